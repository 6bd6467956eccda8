package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avilov/triplog/internal/dbx"
)

// PostgresStore persists documents in a single JSONB table over a dbx.DBTX
// (*sql.DB or *sql.Tx). Insertion order is tracked with a sequence column;
// replacing a document keeps its original position.
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore constructs a store bound to the given DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	query := `SELECT doc FROM resources WHERE collection = $1 ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	query := `SELECT doc FROM resources WHERE collection = $1 AND id = $2`
	var doc []byte
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return json.RawMessage(doc), nil
}

func (s *PostgresStore) Put(ctx context.Context, collection, id string, doc json.RawMessage) error {
	query := `
		INSERT INTO resources (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id)
		DO UPDATE SET doc = EXCLUDED.doc;
	`
	if _, err := s.db.ExecContext(ctx, query, collection, id, []byte(doc)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM resources WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
