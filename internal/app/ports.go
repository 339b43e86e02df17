package app

import (
	"context"

	"github.com/hylla/wishlist/internal/domain"
)

// Repository persists lists together with their items.
type Repository interface {
	CreateList(context.Context, domain.List) error
	UpdateList(context.Context, domain.List) error
	GetList(context.Context, string) (domain.List, error)
	ListListsByOwner(context.Context, string) ([]domain.List, error)
	ListAllLists(context.Context) ([]domain.List, error)
	DeleteList(context.Context, string) error
}
