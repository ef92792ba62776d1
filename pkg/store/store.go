// Package store defines the schema store contract: named, context-tagged
// persistence of serialized form schemas, with a REST client implementation
// for talking to an external schema service.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a lookup that matched no persisted schema. Callers
// treat it as "no schema" and fall back to an empty builder state rather
// than an error surface.
var ErrNotFound = errors.New("store: schema not found")

// Record is a persisted form schema: the serialized schema blob plus the
// metadata used to look it up. SchemaJSON round-trips through schema.Parse;
// a record whose blob fails to parse is treated as unavailable.
type Record struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	SchemaJSON string    `json:"schemaJson"`
	Context    string    `json:"context"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Store persists and retrieves schema records. Updates overwrite in place;
// there is no versioning.
type Store interface {
	// Save inserts the record when ID is zero, assigning one, and otherwise
	// overwrites the existing record.
	Save(ctx context.Context, record Record) (Record, error)
	// Load fetches a record by id; ErrNotFound when absent.
	Load(ctx context.Context, id int64) (Record, error)
	// LoadByContext returns the single active record for a context tag, or
	// ErrNotFound when no active record carries that tag.
	LoadByContext(ctx context.Context, contextTag string) (Record, error)
	// List returns all records ordered by most recent update.
	List(ctx context.Context) ([]Record, error)
	// Delete removes a record by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) error
}
