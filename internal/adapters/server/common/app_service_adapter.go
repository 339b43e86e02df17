package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hylla/wishlist/internal/app"
	"github.com/hylla/wishlist/internal/domain"
)

// AppServiceAdapter maps transport contracts onto app.Service list APIs.
type AppServiceAdapter struct {
	service *app.Service
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

var _ ListService = (*AppServiceAdapter)(nil)

// WithVisitor scopes ctx to the acting visitor.
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return app.WithVisitor(ctx, visitorID)
}

// ListLists returns an owner's lists as envelopes.
func (a *AppServiceAdapter) ListLists(ctx context.Context, ownerID string) ([]ListEnvelope, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	lists, err := a.service.ListLists(ctx, ownerID)
	if err != nil {
		return nil, mapAppError("list lists", err)
	}
	return Envelop(lists), nil
}

// GetList returns one list.
func (a *AppServiceAdapter) GetList(ctx context.Context, listID string) (domain.List, error) {
	if err := a.ready(); err != nil {
		return domain.List{}, err
	}
	list, err := a.service.GetList(ctx, listID)
	if err != nil {
		return domain.List{}, mapAppError("get list", err)
	}
	return list, nil
}

// CreateList creates one list.
func (a *AppServiceAdapter) CreateList(ctx context.Context, in CreateListRequest) (domain.List, error) {
	if err := a.ready(); err != nil {
		return domain.List{}, err
	}
	list, err := a.service.CreateList(ctx, app.CreateListInput{
		OwnerID:     strings.TrimSpace(in.OwnerID),
		Name:        in.Name,
		Description: in.Description,
		Public:      in.Public,
	})
	if err != nil {
		return domain.List{}, mapAppError("create list", err)
	}
	return list, nil
}

// UpdateList updates one list.
func (a *AppServiceAdapter) UpdateList(ctx context.Context, in UpdateListRequest) (domain.List, error) {
	if err := a.ready(); err != nil {
		return domain.List{}, err
	}
	list, err := a.service.UpdateList(ctx, app.UpdateListInput{
		ListID:      in.ListID,
		Name:        in.Name,
		Description: in.Description,
		Public:      in.Public,
	})
	if err != nil {
		return domain.List{}, mapAppError("update list", err)
	}
	return list, nil
}

// DeleteList deletes one list.
func (a *AppServiceAdapter) DeleteList(ctx context.Context, listID string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return mapAppError("delete list", a.service.DeleteList(ctx, listID))
}

// AddItem saves one item on a list.
func (a *AppServiceAdapter) AddItem(ctx context.Context, in AddItemRequest) (domain.List, error) {
	if err := a.ready(); err != nil {
		return domain.List{}, err
	}
	list, err := a.service.AddItem(ctx, app.AddItemInput{
		ListID:    in.ListID,
		ProductID: in.ProductID,
		SKU:       in.SKU,
		Name:      in.Name,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return domain.List{}, mapAppError("add item", err)
	}
	return list, nil
}

// RemoveItem drops one item from a list.
func (a *AppServiceAdapter) RemoveItem(ctx context.Context, listID, itemID string) (domain.List, error) {
	if err := a.ready(); err != nil {
		return domain.List{}, err
	}
	list, err := a.service.RemoveItem(ctx, listID, itemID)
	if err != nil {
		return domain.List{}, mapAppError("remove item", err)
	}
	return list, nil
}

// ready reports a configuration error when the adapter has no service.
func (a *AppServiceAdapter) ready() error {
	if a == nil || a.service == nil {
		return fmt.Errorf("app service adapter is not configured: %w", ErrInvalidArgument)
	}
	return nil
}

// mapAppError maps app and domain errors onto transport error classes.
func mapAppError(operation string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, app.ErrNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrNotFound, err))
	case errors.Is(err, app.ErrForbidden):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrForbidden, err))
	case errors.Is(err, app.ErrListLimitReached),
		errors.Is(err, domain.ErrDuplicateItem):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrConflict, err))
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidOwnerID),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrInvalidArgument, err))
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
