package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StorageRepo = (*StorageRepo)(nil)

// StorageRepo is the SQLite implementation of the StorageRepo port.
// It stores opaque string entries in the single-table storage schema.
type StorageRepo struct {
	db *DB
}

// NewStorageRepo creates a StorageRepo on the given database.
func NewStorageRepo(db *DB) *StorageRepo {
	return &StorageRepo{db: db}
}

// Get retrieves the value stored under key. Returns ("", false, nil)
// when no entry exists.
func (r *StorageRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM storage WHERE key = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get storage entry %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value under key.
func (r *StorageRepo) Set(ctx context.Context, key, value string) error {
	const query = `INSERT OR REPLACE INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`

	if _, err := r.db.Writer.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set storage entry %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key. Deleting a missing entry is a no-op.
func (r *StorageRepo) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM storage WHERE key = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete storage entry %q: %w", key, err)
	}
	return nil
}
