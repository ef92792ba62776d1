// Package sqlite implements the schema store on an embedded SQLite
// database, for single-binary deployments of the schema service and for the
// CLI's local store mode.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formkit/pkg/store"
)

//go:embed schema.sql
var schemaSQL string

// Store persists schema records in a SQLite database file.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open creates or opens the database at path, creating parent directories
// and applying the table schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the record when its id is zero and otherwise overwrites the
// existing row in place. Timestamps are managed here: CreatedAt on insert,
// UpdatedAt on every save.
func (s *Store) Save(ctx context.Context, record store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	record.UpdatedAt = now

	if record.ID == 0 {
		record.CreatedAt = now
		result, err := s.db.ExecContext(ctx,
			`INSERT INTO form_schemas (title, schema_json, context, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			record.Title, record.SchemaJSON, record.Context, boolToInt(record.IsActive),
			now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
		if err != nil {
			return store.Record{}, fmt.Errorf("sqlite: insert schema: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return store.Record{}, fmt.Errorf("sqlite: read assigned id: %w", err)
		}
		record.ID = id
		return record, nil
	}

	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at FROM form_schemas WHERE id = ?", record.ID,
	).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("sqlite: check schema %d: %w", record.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE form_schemas
		 SET title = ?, schema_json = ?, context = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		record.Title, record.SchemaJSON, record.Context, boolToInt(record.IsActive),
		now.Format(time.RFC3339), record.ID,
	)
	if err != nil {
		return store.Record{}, fmt.Errorf("sqlite: update schema %d: %w", record.ID, err)
	}
	if record.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return store.Record{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	return record, nil
}

// Load fetches a record by id.
func (s *Store) Load(ctx context.Context, id int64) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, schema_json, context, is_active, created_at, updated_at
		 FROM form_schemas WHERE id = ?`, id)
	return hydrateRecord(row)
}

// LoadByContext returns the most recently updated active record carrying the
// context tag.
func (s *Store) LoadByContext(ctx context.Context, contextTag string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, schema_json, context, is_active, created_at, updated_at
		 FROM form_schemas
		 WHERE context = ? AND is_active = 1
		 ORDER BY updated_at DESC, id DESC
		 LIMIT 1`, contextTag)
	return hydrateRecord(row)
}

// List returns all records, most recently updated first.
func (s *Store) List(ctx context.Context) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, schema_json, context, is_active, created_at, updated_at
		 FROM form_schemas ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list schemas: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate schemas: %w", err)
	}
	return records, nil
}

// Delete removes a record by id. Absent ids are not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM form_schemas WHERE id = ?", id); err != nil {
		return fmt.Errorf("sqlite: delete schema %d: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func hydrateRecord(row *sql.Row) (store.Record, error) {
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	return record, err
}

func scanRecord(src scanner) (store.Record, error) {
	var (
		record             store.Record
		isActive           int
		createdAt, updated string
	)
	if err := src.Scan(&record.ID, &record.Title, &record.SchemaJSON,
		&record.Context, &isActive, &createdAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Record{}, err
		}
		return store.Record{}, fmt.Errorf("sqlite: scan schema row: %w", err)
	}
	record.IsActive = isActive != 0

	var err error
	if record.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return store.Record{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return store.Record{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}
	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
