package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hylla/wishlist/internal/adapters/remote"
	"github.com/hylla/wishlist/internal/domain"
)

type fakeRemote struct {
	lists      []domain.List
	fetchErr   error
	fetchCalls int
	deleteErr  error
}

func (f *fakeRemote) VisitorID() string { return "v1" }

func (f *fakeRemote) FetchListsForVisitor(context.Context) ([]remote.ListEnvelope, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return envelopes(f.lists), nil
}

func (f *fakeRemote) GetList(_ context.Context, id string) (domain.List, error) {
	for _, list := range f.lists {
		if list.ID == id {
			return list, nil
		}
	}
	return domain.List{}, &remote.APIError{Status: 404}
}

func (f *fakeRemote) CreateList(_ context.Context, in remote.CreateListInput) (domain.List, error) {
	list := domain.List{ID: "new", OwnerID: "v1", Name: in.Name}
	f.lists = append(f.lists, list)
	return list, nil
}

func (f *fakeRemote) UpdateList(_ context.Context, in remote.UpdateListInput) (domain.List, error) {
	for i := range f.lists {
		if f.lists[i].ID == in.ListID {
			f.lists[i].Name = in.Name
			return f.lists[i], nil
		}
	}
	return domain.List{}, &remote.APIError{Status: 404}
}

func (f *fakeRemote) DeleteList(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.lists = removeByID(f.lists, id)
	return nil
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, rem *fakeRemote, ttl time.Duration) (*Service, *Store, *testClock) {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewService(rem, store, ttl, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, store, clock
}

func names(envs []remote.ListEnvelope) []string {
	out := make([]string, 0, len(envs))
	for _, env := range envs {
		out = append(out, env.Data.List.Name)
	}
	return out
}

func TestServiceServesFreshSnapshotWithoutRemote(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}}}
	svc, _, clock := newTestService(t, rem, time.Minute)
	ctx := context.Background()

	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("first fetch error = %v", err)
	}
	rem.lists = append(rem.lists, domain.List{ID: "l2", Name: "Books"})

	clock.now = clock.now.Add(30 * time.Second)
	got, err := svc.FetchListsForVisitor(ctx)
	if err != nil {
		t.Fatalf("cached fetch error = %v", err)
	}
	if rem.fetchCalls != 1 || len(got) != 1 {
		t.Fatalf("expected cached single list with one remote call, got %v calls=%d", names(got), rem.fetchCalls)
	}

	clock.now = clock.now.Add(time.Minute)
	got, err = svc.FetchListsForVisitor(ctx)
	if err != nil {
		t.Fatalf("expired fetch error = %v", err)
	}
	if rem.fetchCalls != 2 || len(got) != 2 {
		t.Fatalf("expected remote refetch after ttl, got %v calls=%d", names(got), rem.fetchCalls)
	}
}

func TestServiceFallsBackToStaleSnapshot(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}}}
	svc, _, _ := newTestService(t, rem, 0)
	ctx := context.Background()

	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("seed fetch error = %v", err)
	}
	rem.fetchErr = errors.New("connection refused")
	got, err := svc.FetchListsForVisitor(ctx)
	if err != nil {
		t.Fatalf("expected stale snapshot, got error %v", err)
	}
	if len(got) != 1 || got[0].ID != "l1" {
		t.Fatalf("unexpected stale lists %v", names(got))
	}
	if rem.fetchCalls != 2 {
		t.Fatalf("ttl 0 must always try remote, calls=%d", rem.fetchCalls)
	}
}

func TestServicePropagatesErrorWithoutSnapshot(t *testing.T) {
	wantErr := errors.New("connection refused")
	rem := &fakeRemote{fetchErr: wantErr}
	svc, _, _ := newTestService(t, rem, time.Minute)
	if _, err := svc.FetchListsForVisitor(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestServiceMutationsPatchSnapshot(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}, {ID: "l2", Name: "Books"}}}
	svc, store, _ := newTestService(t, rem, time.Hour)
	ctx := context.Background()

	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("seed fetch error = %v", err)
	}
	if _, err := svc.CreateList(ctx, remote.CreateListInput{Name: "Gifts"}); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := svc.UpdateList(ctx, remote.UpdateListInput{ListID: "l1", Name: "Weekly"}); err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	if err := svc.DeleteList(ctx, "l2"); err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}

	snap, err := store.Load("v1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := make([]string, 0, len(snap.Lists))
	for _, list := range snap.Lists {
		got = append(got, list.Name)
	}
	if len(got) != 2 || got[0] != "Weekly" || got[1] != "Gifts" {
		t.Fatalf("unexpected patched snapshot %v", got)
	}
	if rem.fetchCalls != 1 {
		t.Fatalf("mutations must not refetch, calls=%d", rem.fetchCalls)
	}
}

func TestServiceFailedDeleteLeavesSnapshot(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}}}
	svc, store, _ := newTestService(t, rem, time.Hour)
	ctx := context.Background()
	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("seed fetch error = %v", err)
	}
	rem.deleteErr = errors.New("boom")
	if err := svc.DeleteList(ctx, "l1"); err == nil {
		t.Fatal("expected delete error")
	}
	snap, err := store.Load("v1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Lists) != 1 {
		t.Fatalf("snapshot changed after failed delete: %#v", snap.Lists)
	}
}

func TestServiceRefreshAndInvalidate(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}}}
	svc, store, _ := newTestService(t, rem, time.Hour)
	ctx := context.Background()
	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("seed fetch error = %v", err)
	}
	rem.lists = append(rem.lists, domain.List{ID: "l2", Name: "Books"})
	got, err := svc.RefreshListsForVisitor(ctx)
	if err != nil {
		t.Fatalf("RefreshListsForVisitor() error = %v", err)
	}
	if len(got) != 2 || rem.fetchCalls != 2 {
		t.Fatalf("refresh must bypass freshness, got %v calls=%d", names(got), rem.fetchCalls)
	}
	if err := svc.Invalidate(); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, err := store.Load("v1"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after invalidate, got %v", err)
	}
}

func TestServiceGetListRefreshesSnapshotEntry(t *testing.T) {
	rem := &fakeRemote{lists: []domain.List{{ID: "l1", Name: "Groceries"}, {ID: "l2", Name: "Books"}}}
	svc, store, _ := newTestService(t, rem, time.Hour)
	ctx := context.Background()
	if _, err := svc.FetchListsForVisitor(ctx); err != nil {
		t.Fatalf("seed fetch error = %v", err)
	}

	rem.lists[0].Name = "Weekly shop"
	list, err := svc.GetList(ctx, "l1")
	if err != nil || list.Name != "Weekly shop" {
		t.Fatalf("GetList() = %#v, %v", list, err)
	}
	rem.lists = rem.lists[:1]
	if _, err := svc.GetList(ctx, "l2"); !remote.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	snap, err := store.Load("v1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Lists) != 1 || snap.Lists[0].Name != "Weekly shop" {
		t.Fatalf("unexpected snapshot %#v", snap.Lists)
	}
	if rem.fetchCalls != 1 {
		t.Fatalf("GetList must not refetch the collection, calls=%d", rem.fetchCalls)
	}
	if svc.VisitorID() != "v1" {
		t.Fatalf("unexpected visitor %q", svc.VisitorID())
	}
}
