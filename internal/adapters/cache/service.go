package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hylla/wishlist/internal/adapters/remote"
	"github.com/hylla/wishlist/internal/domain"
)

// Remote is the list transport the cache decorates.
type Remote interface {
	VisitorID() string
	FetchListsForVisitor(context.Context) ([]remote.ListEnvelope, error)
	GetList(context.Context, string) (domain.List, error)
	CreateList(context.Context, remote.CreateListInput) (domain.List, error)
	UpdateList(context.Context, remote.UpdateListInput) (domain.List, error)
	DeleteList(context.Context, string) error
}

// Logger receives cache diagnostics.
type Logger interface {
	Debug(msg any, keyvals ...any)
}

// Service serves list reads from a fresh snapshot and keeps the snapshot current across mutations.
type Service struct {
	remote Remote
	store  *Store
	ttl    time.Duration
	now    func() time.Time
	logger Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wraps rem with store. A ttl <= 0 always goes to the remote and keeps the snapshot only as a fallback.
func NewService(rem Remote, store *Store, ttl time.Duration, opts ...Option) (*Service, error) {
	if rem == nil {
		return nil, errors.New("remote is required")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		remote: rem,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// VisitorID returns the visitor of the wrapped remote.
func (s *Service) VisitorID() string {
	return s.remote.VisitorID()
}

// FetchListsForVisitor returns a fresh snapshot when one exists, else fetches remotely.
func (s *Service) FetchListsForVisitor(ctx context.Context) ([]remote.ListEnvelope, error) {
	snap, err := s.store.Load(s.VisitorID())
	switch {
	case err == nil:
		if s.ttl > 0 && snap.Age(s.now()) < s.ttl {
			s.debug("serving cached lists", "visitor", snap.VisitorID, "lists", len(snap.Lists))
			return envelopes(snap.Lists), nil
		}
	case errors.Is(err, ErrMiss):
	default:
		s.debug("snapshot unreadable", "err", err)
	}
	return s.fetch(ctx, snap, err == nil)
}

// RefreshListsForVisitor bypasses freshness and fetches remotely, still falling back to a snapshot on failure.
func (s *Service) RefreshListsForVisitor(ctx context.Context) ([]remote.ListEnvelope, error) {
	snap, err := s.store.Load(s.VisitorID())
	return s.fetch(ctx, snap, err == nil)
}

func (s *Service) fetch(ctx context.Context, stale Snapshot, haveStale bool) ([]remote.ListEnvelope, error) {
	fetched, err := s.remote.FetchListsForVisitor(ctx)
	if err != nil {
		if haveStale {
			s.debug("remote fetch failed, serving stale snapshot", "err", err, "age", stale.Age(s.now()))
			return envelopes(stale.Lists), nil
		}
		return nil, err
	}
	snap := Snapshot{
		VisitorID: s.VisitorID(),
		SyncedAt:  s.now().UTC(),
		Lists:     remote.ProjectLists(fetched),
	}
	if err := s.store.Save(snap); err != nil {
		s.debug("save snapshot failed", "err", err)
	}
	return fetched, nil
}

// GetList reads one list remotely and refreshes its snapshot entry; a 404 drops the entry.
func (s *Service) GetList(ctx context.Context, listID string) (domain.List, error) {
	list, err := s.remote.GetList(ctx, listID)
	if err != nil {
		if remote.IsNotFound(err) {
			s.patch(func(lists []domain.List) []domain.List {
				return removeByID(lists, listID)
			})
		}
		return domain.List{}, err
	}
	s.patch(func(lists []domain.List) []domain.List {
		return replaceByID(lists, list)
	})
	return list, nil
}

// CreateList creates remotely and appends the result to the snapshot.
func (s *Service) CreateList(ctx context.Context, in remote.CreateListInput) (domain.List, error) {
	list, err := s.remote.CreateList(ctx, in)
	if err != nil {
		return domain.List{}, err
	}
	s.patch(func(lists []domain.List) []domain.List {
		return append(removeByID(lists, list.ID), list)
	})
	return list, nil
}

// UpdateList updates remotely and replaces the list in the snapshot.
func (s *Service) UpdateList(ctx context.Context, in remote.UpdateListInput) (domain.List, error) {
	list, err := s.remote.UpdateList(ctx, in)
	if err != nil {
		return domain.List{}, err
	}
	s.patch(func(lists []domain.List) []domain.List {
		return replaceByID(lists, list)
	})
	return list, nil
}

// DeleteList deletes remotely and drops the list from the snapshot.
func (s *Service) DeleteList(ctx context.Context, listID string) error {
	if err := s.remote.DeleteList(ctx, listID); err != nil {
		return err
	}
	s.patch(func(lists []domain.List) []domain.List {
		return removeByID(lists, listID)
	})
	return nil
}

// Invalidate drops the visitor's snapshot.
func (s *Service) Invalidate() error {
	if err := s.store.Clear(s.VisitorID()); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}

// patch rewrites an existing snapshot. Without one there is nothing to keep current.
func (s *Service) patch(fn func([]domain.List) []domain.List) {
	snap, err := s.store.Load(s.VisitorID())
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			s.debug("load snapshot for patch failed", "err", err)
		}
		return
	}
	snap.Lists = fn(snap.Lists)
	if err := s.store.Save(snap); err != nil {
		s.debug("save patched snapshot failed", "err", err)
	}
}

func (s *Service) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

func replaceByID(lists []domain.List, list domain.List) []domain.List {
	for i := range lists {
		if lists[i].ID == list.ID {
			lists[i] = list
		}
	}
	return lists
}

func removeByID(lists []domain.List, id string) []domain.List {
	return slices.DeleteFunc(lists, func(list domain.List) bool {
		return list.ID == id
	})
}

func envelopes(lists []domain.List) []remote.ListEnvelope {
	out := make([]remote.ListEnvelope, 0, len(lists))
	for _, list := range lists {
		out = append(out, remote.Envelope(list))
	}
	return out
}

var _ Remote = (*remote.Client)(nil)
