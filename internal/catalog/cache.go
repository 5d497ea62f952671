package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Cache stores the last fetched catalog per category in SQLite.
type Cache struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// OpenCache creates or opens the cache database at path. The special path
// ":memory:" keeps everything in memory.
func OpenCache(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog cache: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" a single
	// database.
	db.SetMaxOpenConns(1)

	cache := &Cache{db: db, dbPath: path, now: time.Now}
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS catalogs (
		category   TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		items      INTEGER NOT NULL,
		fetched_at INTEGER NOT NULL
	);`)
	return err
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database path.
func (c *Cache) Path() string {
	return c.dbPath
}

// Put replaces the stored catalog for category.
func (c *Cache) Put(ctx context.Context, category model.Category, components []*model.Component) error {
	payload, err := model.EncodeCatalog(components)
	if err != nil {
		return fmt.Errorf("failed to encode %s catalog: %w", category, err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO catalogs (category, payload, items, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			payload = excluded.payload,
			items = excluded.items,
			fetched_at = excluded.fetched_at`,
		string(category), string(payload), len(components), c.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store %s catalog: %w", category, err)
	}
	return nil
}

// Get returns the stored catalog for category if it is younger than
// maxAge. A maxAge of zero or less accepts any age.
func (c *Cache) Get(ctx context.Context, category model.Category, maxAge time.Duration) ([]*model.Component, time.Time, error) {
	var payload string
	var fetchedMillis int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM catalogs WHERE category = ?`, string(category),
	).Scan(&payload, &fetchedMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoCatalog
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read %s catalog: %w", category, err)
	}

	fetchedAt := time.UnixMilli(fetchedMillis)
	if maxAge > 0 && c.now().Sub(fetchedAt) > maxAge {
		return nil, fetchedAt, ErrNoCatalog
	}

	components, err := model.DecodeCatalog(category, []byte(payload))
	if err != nil {
		return nil, fetchedAt, err
	}
	return components, fetchedAt, nil
}

// Invalidate drops the stored catalog for category, or every catalog when
// no category is given.
func (c *Cache) Invalidate(ctx context.Context, categories ...model.Category) error {
	if len(categories) == 0 {
		_, err := c.db.ExecContext(ctx, `DELETE FROM catalogs`)
		return err
	}
	for _, category := range categories {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM catalogs WHERE category = ?`, string(category)); err != nil {
			return fmt.Errorf("failed to invalidate %s catalog: %w", category, err)
		}
	}
	return nil
}
