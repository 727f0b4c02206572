// Package store persists one JSON document per user.
//
// Writes follow update-with-merge semantics: each top-level field passed to
// Merge replaces the stored field, fields not passed are left untouched,
// and a dotted key such as "periodSnapshots.2025-01" replaces a single
// entry inside a nested object.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"finanzas/internal/config"
)

// ErrNotFound is returned by Get when the user has no document.
var ErrNotFound = errors.New("document not found")

// DocumentStore reads and merge-writes user documents.
type DocumentStore interface {
	Get(ctx context.Context, userID string) (map[string]any, error)
	Merge(ctx context.Context, userID string, fields map[string]any) error
}

// New returns the store for a DATA_BACKEND value. The postgres and sqlite
// backends require db.
func New(backend string, db *gorm.DB) (DocumentStore, error) {
	switch backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendPostgres, config.BackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("backend %s requires a database connection", backend)
		}
		return NewGormStore(db), nil
	}
	return nil, fmt.Errorf("unknown data backend %q", backend)
}
