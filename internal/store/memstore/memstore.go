// Package memstore provides an ephemeral, thread-safe, in-memory
// implementation of the store.Store interface.
//
// Records live in a sync.Map keyed by "table/id", which gives fine-grained
// concurrent access without global lock contention: request handlers for
// different resources never contend. Suitable for development, testing,
// and any deployment where resource state does not need to survive a
// restart. For durable storage use sqlitestore instead.
package memstore

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/vk/restifygo/internal/store"
)

// Store is an in-memory implementation of store.Store backed by a single
// sync.Map. Keys are "table/id" composites; values are store.Record.
type Store struct {
	records sync.Map
}

// New creates a new, empty in-memory store.
func New() *Store {
	return &Store{}
}

func key(table, id string) string {
	return table + "/" + id
}

// List returns all records of a table, ordered by id.
func (s *Store) List(ctx context.Context, table string) ([]store.Record, error) {
	prefix := table + "/"

	type entry struct {
		id  string
		rec store.Record
	}
	var entries []entry
	s.records.Range(func(k, v any) bool {
		ks := k.(string)
		if strings.HasPrefix(ks, prefix) {
			entries = append(entries, entry{id: strings.TrimPrefix(ks, prefix), rec: v.(store.Record)})
		}
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	recs := make([]store.Record, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, maps.Clone(e.rec))
	}
	return recs, nil
}

// Get retrieves a single record, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, table, id string) (store.Record, error) {
	v, ok := s.records.Load(key(table, id))
	if !ok {
		return nil, store.ErrNotFound
	}
	return maps.Clone(v.(store.Record)), nil
}

// Put inserts or replaces a record. The stored copy is detached from the
// caller's map.
func (s *Store) Put(ctx context.Context, table, id string, rec store.Record) error {
	s.records.Store(key(table, id), maps.Clone(rec))
	return nil
}

// Delete removes a record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	s.records.Delete(key(table, id))
	return nil
}
