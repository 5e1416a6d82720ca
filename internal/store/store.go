// Package store defines the persistence contract repositories read and
// write through. Implementations live in subpackages: memstore for
// ephemeral in-memory state, sqlitestore for durable single-file storage.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no record exists under the given
// table and id.
var ErrNotFound = errors.New("store: record not found")

// Record is one persisted row, keyed by attribute name. The "id" attribute
// always mirrors the record's storage key.
type Record map[string]any

// Store is the minimal persistence surface a repository needs. List
// returns records ordered by id so repeated calls are deterministic.
type Store interface {
	List(ctx context.Context, table string) ([]Record, error)
	Get(ctx context.Context, table, id string) (Record, error)
	Put(ctx context.Context, table, id string, rec Record) error
	Delete(ctx context.Context, table, id string) error
}
