package app

import (
	"context"
	"strings"
	"time"

	"github.com/hylla/wishlist/internal/domain"
)

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	// MaxListsPerOwner caps how many lists one visitor can hold. Zero means no cap.
	MaxListsPerOwner int
}

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service implements list use-cases on top of a Repository.
type Service struct {
	repo     Repository
	idGen    IDGenerator
	clock    Clock
	maxLists int
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if cfg.MaxListsPerOwner < 0 {
		cfg.MaxListsPerOwner = 0
	}
	return &Service{
		repo:     repo,
		idGen:    idGen,
		clock:    clock,
		maxLists: cfg.MaxListsPerOwner,
	}
}

// CreateListInput holds input values for create list operations.
type CreateListInput struct {
	OwnerID     string
	Name        string
	Description string
	Public      bool
}

// UpdateListInput holds input values for update list operations.
type UpdateListInput struct {
	ListID      string
	Name        string
	Description string
	Public      bool
}

// AddItemInput holds input values for add item operations.
type AddItemInput struct {
	ListID    string
	ProductID string
	SKU       string
	Name      string
	Quantity  int
}

// ListLists returns an owner's lists in creation order. Other visitors only
// see the owner's public lists.
func (s *Service) ListLists(ctx context.Context, ownerID string) ([]domain.List, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, domain.ErrInvalidOwnerID
	}
	lists, err := s.repo.ListListsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.List, 0, len(lists))
	for _, list := range lists {
		if !canRead(ctx, list.OwnerID, list.Public) {
			continue
		}
		out = append(out, list)
	}
	return out, nil
}

// GetList returns one list by id.
func (s *Service) GetList(ctx context.Context, listID string) (domain.List, error) {
	listID = strings.TrimSpace(listID)
	if listID == "" {
		return domain.List{}, domain.ErrInvalidID
	}
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return domain.List{}, err
	}
	if !canRead(ctx, list.OwnerID, list.Public) {
		// Private lists of other visitors are indistinguishable from missing ones.
		return domain.List{}, ErrNotFound
	}
	return list, nil
}

// CreateList creates list.
func (s *Service) CreateList(ctx context.Context, in CreateListInput) (domain.List, error) {
	if !canWrite(ctx, strings.TrimSpace(in.OwnerID)) {
		return domain.List{}, ErrForbidden
	}
	list, err := domain.NewList(domain.ListInput{
		ID:          s.idGen(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Public:      in.Public,
	}, s.clock())
	if err != nil {
		return domain.List{}, err
	}
	if s.maxLists > 0 {
		existing, err := s.repo.ListListsByOwner(ctx, list.OwnerID)
		if err != nil {
			return domain.List{}, err
		}
		if len(existing) >= s.maxLists {
			return domain.List{}, ErrListLimitReached
		}
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// UpdateList replaces a list's name, description and visibility.
func (s *Service) UpdateList(ctx context.Context, in UpdateListInput) (domain.List, error) {
	list, err := s.writableList(ctx, in.ListID)
	if err != nil {
		return domain.List{}, err
	}
	if err := list.UpdateDetails(in.Name, in.Description, in.Public, s.clock()); err != nil {
		return domain.List{}, err
	}
	if err := s.repo.UpdateList(ctx, list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// DeleteList deletes a list and its items.
func (s *Service) DeleteList(ctx context.Context, listID string) error {
	list, err := s.writableList(ctx, listID)
	if err != nil {
		return err
	}
	return s.repo.DeleteList(ctx, list.ID)
}

// AddItem saves a product on a list.
func (s *Service) AddItem(ctx context.Context, in AddItemInput) (domain.List, error) {
	list, err := s.writableList(ctx, in.ListID)
	if err != nil {
		return domain.List{}, err
	}
	item := domain.Item{
		ID:        s.idGen(),
		ProductID: in.ProductID,
		SKU:       in.SKU,
		Name:      in.Name,
		Quantity:  in.Quantity,
	}
	if err := list.AddItem(item, s.clock()); err != nil {
		return domain.List{}, err
	}
	if err := s.repo.UpdateList(ctx, list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// RemoveItem drops one item from a list.
func (s *Service) RemoveItem(ctx context.Context, listID, itemID string) (domain.List, error) {
	list, err := s.writableList(ctx, listID)
	if err != nil {
		return domain.List{}, err
	}
	if err := list.RemoveItem(itemID, s.clock()); err != nil {
		return domain.List{}, err
	}
	if err := s.repo.UpdateList(ctx, list); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// writableList loads a list and checks the acting visitor owns it.
func (s *Service) writableList(ctx context.Context, listID string) (domain.List, error) {
	listID = strings.TrimSpace(listID)
	if listID == "" {
		return domain.List{}, domain.ErrInvalidID
	}
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return domain.List{}, err
	}
	if !canWrite(ctx, list.OwnerID) {
		if !canRead(ctx, list.OwnerID, list.Public) {
			return domain.List{}, ErrNotFound
		}
		return domain.List{}, ErrForbidden
	}
	return list, nil
}
