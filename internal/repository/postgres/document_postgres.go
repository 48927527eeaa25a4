package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"droneapi/internal/model"
	"droneapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentStore.
// Documents live in a single JSONB table bucketed by collection name; the
// database assigns identifiers and creation timestamps.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres store.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentStore = (*DocumentPostgres)(nil)

// Insert persists the fields as JSONB and returns the generated identifier.
func (r *DocumentPostgres) Insert(ctx context.Context, collection string, fields model.Document) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	const q = `
		INSERT INTO documents (collection, data)
		VALUES ($1, $2)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, q, collection, data).Scan(&id); err != nil {
		return "", err
	}
	return id.String(), nil
}

// List returns all documents in the collection. Each raw document is the
// stored JSONB fields merged with the identifier and creation timestamp in
// their native forms; callers normalize before serving.
func (r *DocumentPostgres) List(ctx context.Context, collection string) ([]model.Document, error) {
	const q = `
		SELECT id, data, created_at
		FROM documents
		WHERE collection = $1
	`
	rows, err := r.db.QueryContext(ctx, q, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			data      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &data, &createdAt); err != nil {
			return nil, err
		}

		doc := model.Document{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
		}
		doc[model.IDKey] = id
		doc["created_at"] = createdAt

		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// Collections returns the distinct collection names, sorted.
func (r *DocumentPostgres) Collections(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT collection FROM documents ORDER BY collection`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
