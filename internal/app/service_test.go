package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hylla/wishlist/internal/domain"
)

type fakeRepo struct {
	lists map[string]domain.List
	order []string
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lists: map[string]domain.List{}}
}

func (f *fakeRepo) CreateList(_ context.Context, l domain.List) error {
	if f.err != nil {
		return f.err
	}
	f.lists[l.ID] = l.Clone()
	f.order = append(f.order, l.ID)
	return nil
}

func (f *fakeRepo) UpdateList(_ context.Context, l domain.List) error {
	if _, ok := f.lists[l.ID]; !ok {
		return ErrNotFound
	}
	f.lists[l.ID] = l.Clone()
	return nil
}

func (f *fakeRepo) GetList(_ context.Context, id string) (domain.List, error) {
	l, ok := f.lists[id]
	if !ok {
		return domain.List{}, ErrNotFound
	}
	return l.Clone(), nil
}

func (f *fakeRepo) ListListsByOwner(_ context.Context, ownerID string) ([]domain.List, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.List, 0, len(f.order))
	for _, id := range f.order {
		l, ok := f.lists[id]
		if !ok || l.OwnerID != ownerID {
			continue
		}
		out = append(out, l.Clone())
	}
	return out, nil
}

func (f *fakeRepo) ListAllLists(_ context.Context) ([]domain.List, error) {
	out := make([]domain.List, 0, len(f.order))
	for _, id := range f.order {
		if l, ok := f.lists[id]; ok {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteList(_ context.Context, id string) error {
	if _, ok := f.lists[id]; !ok {
		return ErrNotFound
	}
	delete(f.lists, id)
	return nil
}

func newTestService(repo Repository, cfg ServiceConfig) *Service {
	n := 0
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	return NewService(repo, func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}, func() time.Time {
		now = now.Add(time.Second)
		return now
	}, cfg)
}

func TestCreateAndListLists(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, ServiceConfig{})
	ctx := context.Background()

	first, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "Groceries"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "Books"}); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v2", Name: "Other"}); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if first.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", first.ID)
	}

	lists, err := svc.ListLists(ctx, "v1")
	if err != nil {
		t.Fatalf("ListLists() error = %v", err)
	}
	if len(lists) != 2 || lists[0].Name != "Groceries" || lists[1].Name != "Books" {
		t.Fatalf("unexpected lists %#v", lists)
	}
	if _, err := svc.ListLists(ctx, " "); err != domain.ErrInvalidOwnerID {
		t.Fatalf("expected ErrInvalidOwnerID, got %v", err)
	}
}

func TestCreateListValidationAndLimit(t *testing.T) {
	svc := newTestService(newFakeRepo(), ServiceConfig{MaxListsPerOwner: 1})
	ctx := context.Background()
	if _, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: " "}); err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "One"}); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "Two"}); err != ErrListLimitReached {
		t.Fatalf("expected ErrListLimitReached, got %v", err)
	}
}

func TestUpdateAndDeleteList(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, ServiceConfig{})
	ctx := context.Background()
	list, err := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "Books"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	updated, err := svc.UpdateList(ctx, UpdateListInput{ListID: list.ID, Name: "Novels", Description: "to read", Public: true})
	if err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	if updated.Name != "Novels" || !updated.Public || !updated.UpdatedAt.After(list.UpdatedAt) {
		t.Fatalf("unexpected updated list %#v", updated)
	}
	if err := svc.DeleteList(ctx, list.ID); err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}
	if _, err := svc.GetList(ctx, list.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.DeleteList(ctx, list.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestVisitorScopeGuardsMutations(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, ServiceConfig{})
	owner := WithVisitor(context.Background(), "v1")
	other := WithVisitor(context.Background(), "v2")

	private, err := svc.CreateList(owner, CreateListInput{OwnerID: "v1", Name: "Private"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	public, err := svc.CreateList(owner, CreateListInput{OwnerID: "v1", Name: "Shared", Public: true})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	if _, err := svc.CreateList(other, CreateListInput{OwnerID: "v1", Name: "Sneaky"}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetList(other, private.ID); err != ErrNotFound {
		t.Fatalf("expected private list hidden, got %v", err)
	}
	if err := svc.DeleteList(other, private.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for hidden list, got %v", err)
	}
	if err := svc.DeleteList(other, public.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for public list, got %v", err)
	}
	lists, err := svc.ListLists(other, "v1")
	if err != nil {
		t.Fatalf("ListLists() error = %v", err)
	}
	if len(lists) != 1 || lists[0].ID != public.ID {
		t.Fatalf("expected only public list, got %#v", lists)
	}
}

func TestAddAndRemoveItem(t *testing.T) {
	svc := newTestService(newFakeRepo(), ServiceConfig{})
	ctx := context.Background()
	list, _ := svc.CreateList(ctx, CreateListInput{OwnerID: "v1", Name: "Gifts"})

	withItem, err := svc.AddItem(ctx, AddItemInput{ListID: list.ID, ProductID: "p1", SKU: "s1", Name: "Mug"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if len(withItem.Items) != 1 || withItem.Items[0].Quantity != 1 {
		t.Fatalf("unexpected items %#v", withItem.Items)
	}
	stored, _ := svc.GetList(ctx, list.ID)
	if len(stored.Items) != 1 {
		t.Fatalf("expected item persisted, got %#v", stored.Items)
	}
	emptied, err := svc.RemoveItem(ctx, list.ID, withItem.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if len(emptied.Items) != 0 {
		t.Fatalf("expected no items, got %#v", emptied.Items)
	}
	if _, err := svc.RemoveItem(ctx, list.ID, "missing"); err != domain.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
