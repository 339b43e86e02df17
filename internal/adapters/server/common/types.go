// Package common provides transport-agnostic server contracts used by HTTP and MCP adapters.
package common

import (
	"context"
	"errors"

	"github.com/hylla/wishlist/internal/domain"
)

// VisitorHeader carries the acting visitor id on HTTP requests.
const VisitorHeader = "X-Wishlist-Visitor"

// ErrInvalidArgument reports malformed transport input.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound reports missing transport-visible resources.
var ErrNotFound = errors.New("not found")

// ErrForbidden reports a mutation by a visitor that does not own the list.
var ErrForbidden = errors.New("forbidden")

// ErrConflict reports a request that collides with current state.
var ErrConflict = errors.New("conflict")

// ListEnvelope wraps one list the way list collections are returned on the wire.
type ListEnvelope struct {
	ID   string           `json:"id"`
	Data ListEnvelopeData `json:"data"`
}

// ListEnvelopeData holds the enveloped list payload.
type ListEnvelopeData struct {
	List domain.List `json:"list"`
}

// CreateListRequest captures one list creation.
type CreateListRequest struct {
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// UpdateListRequest captures one list update. ListID comes from the route.
type UpdateListRequest struct {
	ListID      string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// AddItemRequest captures one item addition. ListID comes from the route.
type AddItemRequest struct {
	ListID    string `json:"-"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// ListService is the list surface shared by the HTTP and MCP transports.
type ListService interface {
	ListLists(context.Context, string) ([]ListEnvelope, error)
	GetList(context.Context, string) (domain.List, error)
	CreateList(context.Context, CreateListRequest) (domain.List, error)
	UpdateList(context.Context, UpdateListRequest) (domain.List, error)
	DeleteList(context.Context, string) error
	AddItem(context.Context, AddItemRequest) (domain.List, error)
	RemoveItem(context.Context, string, string) (domain.List, error)
}

// Envelop wraps lists in wire envelopes, preserving order.
func Envelop(lists []domain.List) []ListEnvelope {
	out := make([]ListEnvelope, 0, len(lists))
	for _, list := range lists {
		out = append(out, ListEnvelope{ID: list.ID, Data: ListEnvelopeData{List: list}})
	}
	return out
}
