// Package storage provides the document stores backing the resource server.
// Documents are schemaless JSON objects grouped into named collections and
// addressed by their "id" field. Two implementations exist: an in-memory
// store for development and tests, and a PostgreSQL store for persistence.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no document with the requested id exists in
// the collection.
var ErrNotFound = errors.New("document not found")

// Store is a collection-of-documents store. List returns documents in
// insertion order, which is the order clients see them in before applying
// their own sorting.
type Store interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)

	// Put inserts or fully replaces the document with the given id.
	Put(ctx context.Context, collection, id string, doc json.RawMessage) error

	// Delete removes the document. Fails with ErrNotFound when it does
	// not exist.
	Delete(ctx context.Context, collection, id string) error
}
