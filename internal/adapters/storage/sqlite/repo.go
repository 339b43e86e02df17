package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hylla/wishlist/internal/app"
	"github.com/hylla/wishlist/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// tsLayout is fixed width so TEXT ordering matches chronological ordering.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository stores lists and their items in SQLite.
type Repository struct {
	db *sql.DB
}

// Open opens the requested operation.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens in memory.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the requested operation.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate handles migrate.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			public INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS list_items (
			id TEXT NOT NULL,
			list_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			product_id TEXT NOT NULL,
			sku TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			added_at TEXT NOT NULL,
			PRIMARY KEY(list_id, id),
			FOREIGN KEY(list_id) REFERENCES lists(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lists_owner_created ON lists(owner_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_list_items_list_position ON list_items(list_id, position);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateList creates list.
func (r *Repository) CreateList(ctx context.Context, l domain.List) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO lists(id, owner_id, name, description, public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.OwnerID, l.Name, l.Description, boolInt(l.Public), ts(l.CreatedAt), ts(l.UpdatedAt)); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, l.ID, l.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateList rewrites list fields and replaces its items.
func (r *Repository) UpdateList(ctx context.Context, l domain.List) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE lists
		SET owner_id = ?, name = ?, description = ?, public = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, l.OwnerID, l.Name, l.Description, boolInt(l.Public), ts(l.CreatedAt), ts(l.UpdatedAt), l.ID)
	if err != nil {
		return err
	}
	if err = translateNoRows(res); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM list_items WHERE list_id = ?`, l.ID); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, l.ID, l.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// GetList returns list.
func (r *Repository) GetList(ctx context.Context, id string) (domain.List, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, public, created_at, updated_at
		FROM lists
		WHERE id = ?
	`, id)
	l, err := scanList(row)
	if err != nil {
		return domain.List{}, err
	}
	items, err := r.itemsByList(ctx, `WHERE i.list_id = ?`, id)
	if err != nil {
		return domain.List{}, err
	}
	l.Items = items[l.ID]
	if l.Items == nil {
		l.Items = []domain.Item{}
	}
	return l, nil
}

// ListListsByOwner lists an owner's lists in creation order.
func (r *Repository) ListListsByOwner(ctx context.Context, ownerID string) ([]domain.List, error) {
	return r.queryLists(ctx, `WHERE owner_id = ?`, `JOIN lists l ON l.id = i.list_id WHERE l.owner_id = ?`, ownerID)
}

// ListAllLists lists every stored list.
func (r *Repository) ListAllLists(ctx context.Context) ([]domain.List, error) {
	return r.queryLists(ctx, ``, ``)
}

// DeleteList deletes list.
func (r *Repository) DeleteList(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM list_items WHERE list_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err = translateNoRows(res); err != nil {
		return err
	}
	return tx.Commit()
}

// queryLists loads lists matching listWhere and attaches items matching itemFilter.
func (r *Repository) queryLists(ctx context.Context, listWhere, itemFilter string, args ...any) ([]domain.List, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, public, created_at, updated_at
		FROM lists
		`+listWhere+`
		ORDER BY created_at ASC, rowid ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.itemsByList(ctx, itemFilter, args...)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
		if out[i].Items == nil {
			out[i].Items = []domain.Item{}
		}
	}
	return out, nil
}

// itemsByList loads items grouped by list id.
func (r *Repository) itemsByList(ctx context.Context, filter string, args ...any) (map[string][]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.list_id, i.id, i.product_id, i.sku, i.name, i.quantity, i.added_at
		FROM list_items i
		`+filter+`
		ORDER BY i.list_id ASC, i.position ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]domain.Item{}
	for rows.Next() {
		var (
			listID   string
			item     domain.Item
			addedRaw string
		)
		if err := rows.Scan(&listID, &item.ID, &item.ProductID, &item.SKU, &item.Name, &item.Quantity, &addedRaw); err != nil {
			return nil, err
		}
		item.AddedAt = parseTS(addedRaw)
		out[listID] = append(out[listID], item)
	}
	return out, rows.Err()
}

// execerContext represents a write-only DB contract used by DB and Tx implementations.
type execerContext interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

// insertItems writes items in order.
func insertItems(ctx context.Context, execer execerContext, listID string, items []domain.Item) error {
	for pos, item := range items {
		if _, err := execer.ExecContext(ctx, `
			INSERT INTO list_items(id, list_id, position, product_id, sku, name, quantity, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, listID, pos, item.ProductID, item.SKU, item.Name, item.Quantity, ts(item.AddedAt)); err != nil {
			return fmt.Errorf("insert list item %q: %w", item.ID, err)
		}
	}
	return nil
}

// scanner represents a row source shared by sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanList handles scan list.
func scanList(s scanner) (domain.List, error) {
	var (
		l          domain.List
		public     int
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Description, &public, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.List{}, app.ErrNotFound
		}
		return domain.List{}, err
	}
	l.Public = public != 0
	l.CreatedAt = parseTS(createdRaw)
	l.UpdatedAt = parseTS(updatedRaw)
	return l, nil
}

// translateNoRows handles translate no rows.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// boolInt stores booleans as 0/1 integers.
func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
