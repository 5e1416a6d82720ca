// Package sqlitestore provides a durable implementation of the store.Store
// interface on a single SQLite file. Records are kept as JSON documents in
// one table keyed by (tbl, id), which keeps the schema independent of the
// repositories defined at runtime.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vk/restifygo/internal/store"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS records (
	tbl  TEXT NOT NULL,
	id   TEXT NOT NULL,
	data TEXT NOT NULL,
	PRIMARY KEY (tbl, id)
);`

// Store is a SQLite-backed implementation of store.Store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the backing table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all records of a table, ordered by id.
func (s *Store) List(ctx context.Context, table string) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM records WHERE tbl = ? ORDER BY id ASC`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []store.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec store.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("corrupt record in table %s: %w", table, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Get retrieves a single record, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, table, id string) (store.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE tbl = ? AND id = ?`, table, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec store.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("corrupt record %s/%s: %w", table, id, err)
	}
	return rec, nil
}

// Put inserts or replaces a record.
func (s *Store) Put(ctx context.Context, table, id string, rec store.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (tbl, id, data) VALUES (?, ?, ?)
		ON CONFLICT (tbl, id) DO UPDATE SET data = excluded.data`,
		table, id, string(data))
	return err
}

// Delete removes a record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE tbl = ? AND id = ?`, table, id)
	return err
}
