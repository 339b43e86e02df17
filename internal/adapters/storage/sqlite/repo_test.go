package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hylla/wishlist/internal/app"
	"github.com/hylla/wishlist/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "wishlist.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestRepository_ListLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	list, err := domain.NewList(domain.ListInput{ID: "l1", OwnerID: "v1", Name: "Groceries", Description: "weekly"}, now)
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}
	if err := list.AddItem(domain.Item{ID: "i1", ProductID: "p1", SKU: "s1", Name: "Milk"}, now); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := list.AddItem(domain.Item{ID: "i2", ProductID: "p2", Quantity: 3}, now); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := repo.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	loaded, err := repo.GetList(ctx, "l1")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if loaded.Name != "Groceries" || loaded.Description != "weekly" || loaded.Public {
		t.Fatalf("unexpected list %#v", loaded)
	}
	if len(loaded.Items) != 2 || loaded.Items[0].ID != "i1" || loaded.Items[1].Quantity != 3 {
		t.Fatalf("unexpected items %#v", loaded.Items)
	}
	if !loaded.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, loaded.CreatedAt)
	}

	later := now.Add(time.Hour)
	if err := loaded.UpdateDetails("Food", "", true, later); err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	if err := loaded.RemoveItem("i1", later); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if err := repo.UpdateList(ctx, loaded); err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	reloaded, err := repo.GetList(ctx, "l1")
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if reloaded.Name != "Food" || !reloaded.Public || len(reloaded.Items) != 1 || reloaded.Items[0].ID != "i2" {
		t.Fatalf("unexpected reloaded list %#v", reloaded)
	}

	if err := repo.DeleteList(ctx, "l1"); err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}
	if _, err := repo.GetList(ctx, "l1"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteList(ctx, "l1"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
	if err := repo.UpdateList(ctx, loaded); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of deleted list, got %v", err)
	}
}

func TestRepository_ListListsByOwnerOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	base := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	fixtures := []struct {
		id, owner, name string
		at              time.Time
	}{
		{id: "b", owner: "v1", name: "Books", at: base.Add(1500 * time.Millisecond)},
		{id: "a", owner: "v1", name: "Groceries", at: base},
		{id: "c", owner: "v2", name: "Other", at: base},
		{id: "d", owner: "v1", name: "Later", at: base.Add(2 * time.Second)},
	}
	for _, fx := range fixtures {
		l, err := domain.NewList(domain.ListInput{ID: fx.id, OwnerID: fx.owner, Name: fx.name}, fx.at)
		if err != nil {
			t.Fatalf("NewList() error = %v", err)
		}
		if fx.id == "a" {
			_ = l.AddItem(domain.Item{ID: "i1", ProductID: "p1"}, fx.at)
		}
		if err := repo.CreateList(ctx, l); err != nil {
			t.Fatalf("CreateList() error = %v", err)
		}
	}

	lists, err := repo.ListListsByOwner(ctx, "v1")
	if err != nil {
		t.Fatalf("ListListsByOwner() error = %v", err)
	}
	got := []string{}
	for _, l := range lists {
		got = append(got, l.ID)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "d" {
		t.Fatalf("unexpected order %v", got)
	}
	if len(lists[0].Items) != 1 || lists[1].Items == nil || len(lists[1].Items) != 0 {
		t.Fatalf("unexpected items %#v / %#v", lists[0].Items, lists[1].Items)
	}

	all, err := repo.ListAllLists(ctx)
	if err != nil {
		t.Fatalf("ListAllLists() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 lists, got %d", len(all))
	}
}

func TestRepository_ServiceIntegration(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	svc := app.NewService(repo, func() string { return "l-1" }, nil, app.ServiceConfig{})

	created, err := svc.CreateList(ctx, app.CreateListInput{OwnerID: "v1", Name: "Gifts"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	got, err := svc.GetList(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if got.Name != "Gifts" {
		t.Fatalf("unexpected list %#v", got)
	}
}
