package tui

import (
	"context"

	"github.com/hylla/wishlist/internal/adapters/remote"
	"github.com/hylla/wishlist/internal/domain"
)

// ListService is the remote list surface the UI reads and mutates through.
type ListService interface {
	VisitorID() string
	FetchListsForVisitor(context.Context) ([]remote.ListEnvelope, error)
	GetList(context.Context, string) (domain.List, error)
	CreateList(context.Context, remote.CreateListInput) (domain.List, error)
	UpdateList(context.Context, remote.UpdateListInput) (domain.List, error)
	DeleteList(context.Context, string) error
}

// listRefresher is implemented by services that can bypass a local cache on explicit reload.
type listRefresher interface {
	RefreshListsForVisitor(context.Context) ([]remote.ListEnvelope, error)
}

// Logger receives controller diagnostics.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

type discardLogger struct{}

func (discardLogger) Debug(any, ...any) {}

func (discardLogger) Error(any, ...any) {}
