// Package cache keeps a per-visitor TOML snapshot of remote lists so the UI can reopen fast and survive an unreachable API.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hylla/wishlist/internal/domain"
)

// ErrMiss reports that no snapshot exists for a visitor.
var ErrMiss = errors.New("cache miss")

// Snapshot is the persisted list collection of one visitor.
type Snapshot struct {
	VisitorID string        `toml:"visitor_id"`
	SyncedAt  time.Time     `toml:"synced_at"`
	Lists     []domain.List `toml:"lists"`
}

// Age reports how old the snapshot is at now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.SyncedAt)
}

// Store reads and writes snapshots under one directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore constructs a Store rooted at dir.
func NewStore(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache dir is required")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the snapshot file path for visitorID.
func (s *Store) Path(visitorID string) string {
	return filepath.Join(s.dir, fileName(visitorID))
}

// Load reads the snapshot for visitorID.
func (s *Store) Load(visitorID string) (Snapshot, error) {
	if strings.TrimSpace(visitorID) == "" {
		return Snapshot{}, errors.New("visitor id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.Path(visitorID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, ErrMiss
		}
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := toml.Unmarshal(content, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.VisitorID != visitorID {
		return Snapshot{}, ErrMiss
	}
	return snap, nil
}

// Save writes snap atomically, replacing any previous snapshot of the same visitor.
func (s *Store) Save(snap Snapshot) error {
	if strings.TrimSpace(snap.VisitorID) == "" {
		return errors.New("visitor id is required")
	}
	encoded, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*.toml")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path(snap.VisitorID)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot for visitorID. Clearing a missing snapshot is not an error.
func (s *Store) Clear(visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.Path(visitorID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// fileName maps a visitor id onto a safe file name.
func fileName(visitorID string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(visitorID) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + ".toml"
}
