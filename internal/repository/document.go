package repository

import (
	"context"

	"droneapi/internal/model"
)

// DocumentStore defines data access for schemaless documents bucketed by
// collection name. No business logic here — strictly persistence operations.
type DocumentStore interface {
	// Insert persists the given fields as a new document in the named
	// collection and returns the store-assigned identifier as a string.
	Insert(ctx context.Context, collection string, fields model.Document) (string, error)

	// List returns every document in the named collection, unordered and
	// unpaginated, in raw form: the stored fields merged with the opaque
	// identifier (under model.IDKey) and the native creation timestamp.
	List(ctx context.Context, collection string) ([]model.Document, error)

	// Collections returns the distinct collection names currently present.
	Collections(ctx context.Context) ([]string, error)
}
