package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hylla/wishlist/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "wishlist.snapshot.v1"

// Snapshot is the portable export format for lists.
type Snapshot struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Lists      []domain.List `json:"lists"`
}

// ExportSnapshot exports every list, or one owner's lists when ownerID is set.
func (s *Service) ExportSnapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	var (
		lists []domain.List
		err   error
	)
	if ownerID = strings.TrimSpace(ownerID); ownerID != "" {
		lists, err = s.repo.ListListsByOwner(ctx, ownerID)
	} else {
		lists, err = s.repo.ListAllLists(ctx)
	}
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Lists:      make([]domain.List, 0, len(lists)),
	}
	for _, list := range lists {
		snap.Lists = append(snap.Lists, list.Clone())
	}
	snap.sort()
	return snap, nil
}

// ImportSnapshot upserts every list in snap.
func (s *Service) ImportSnapshot(ctx context.Context, snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	snap.sort()
	for _, list := range snap.Lists {
		if err := s.upsertList(ctx, list); err != nil {
			return fmt.Errorf("import list %q: %w", list.ID, err)
		}
	}
	return nil
}

// Validate validates the requested operation.
func (s *Snapshot) Validate() error {
	if s.Version != "" && s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: %q", s.Version)
	}
	listIDs := map[string]struct{}{}
	for i, list := range s.Lists {
		if strings.TrimSpace(list.ID) == "" {
			return fmt.Errorf("lists[%d].id is required", i)
		}
		if strings.TrimSpace(list.OwnerID) == "" {
			return fmt.Errorf("lists[%d].owner_id is required", i)
		}
		if strings.TrimSpace(list.Name) == "" {
			return fmt.Errorf("lists[%d].name is required", i)
		}
		if list.CreatedAt.IsZero() || list.UpdatedAt.IsZero() {
			return fmt.Errorf("lists[%d] timestamps are required", i)
		}
		if _, exists := listIDs[list.ID]; exists {
			return fmt.Errorf("duplicate list id: %q", list.ID)
		}
		listIDs[list.ID] = struct{}{}
		itemIDs := map[string]struct{}{}
		for j, item := range list.Items {
			if strings.TrimSpace(item.ID) == "" {
				return fmt.Errorf("lists[%d].items[%d].id is required", i, j)
			}
			if strings.TrimSpace(item.ProductID) == "" {
				return fmt.Errorf("lists[%d].items[%d].product_id is required", i, j)
			}
			if item.Quantity < 1 {
				return fmt.Errorf("lists[%d].items[%d].quantity must be positive", i, j)
			}
			if _, exists := itemIDs[item.ID]; exists {
				return fmt.Errorf("lists[%d] duplicate item id: %q", i, item.ID)
			}
			itemIDs[item.ID] = struct{}{}
		}
	}
	return nil
}

// upsertList creates or replaces one list.
func (s *Service) upsertList(ctx context.Context, list domain.List) error {
	if list.Items == nil {
		list.Items = []domain.Item{}
	}
	if _, err := s.repo.GetList(ctx, list.ID); err == nil {
		return s.repo.UpdateList(ctx, list)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.repo.CreateList(ctx, list)
}

// sort orders lists by owner then creation time for stable output.
func (s *Snapshot) sort() {
	sort.SliceStable(s.Lists, func(i, j int) bool {
		a, b := s.Lists[i], s.Lists[j]
		if a.OwnerID != b.OwnerID {
			return a.OwnerID < b.OwnerID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
