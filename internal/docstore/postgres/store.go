package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/docstore"
)

// Store keeps documents in a single jsonb-backed table per deployment.
type Store struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewStore(log *slog.Logger, pool *pgxpool.Pool) *Store {
	return &Store{log: log, pool: pool}
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		doc_id     TEXT NOT NULL,
		fields     JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, doc_id)
	)`)
	if err != nil {
		return fmt.Errorf("%w: migrate documents: %v", core.ErrPersistence, err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: encode document: %v", core.ErrPersistence, err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO documents (collection, doc_id, fields, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (collection, doc_id) DO UPDATE SET fields=$3, updated_at=now()`,
		collection, id, payload)
	if err != nil {
		return "", fmt.Errorf("%w: save %s/%s: %v", core.ErrPersistence, collection, id, err)
	}
	return id, nil
}

func (s *Store) List(ctx context.Context, collection string, filter map[string]any) ([]docstore.Document, error) {
	query := `SELECT doc_id, fields FROM documents WHERE collection=$1`
	args := []any{collection}
	if len(filter) > 0 {
		payload, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("%w: encode filter: %v", core.ErrPersistence, err)
		}
		query += ` AND fields @> $2`
		args = append(args, payload)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", core.ErrPersistence, collection, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var d docstore.Document
		var raw []byte
		if err := rows.Scan(&d.ID, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", core.ErrPersistence, collection, err)
		}
		if err := json.Unmarshal(raw, &d.Fields); err != nil {
			return nil, fmt.Errorf("%w: decode %s/%s: %v", core.ErrPersistence, collection, d.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection=$1 AND doc_id=$2`, collection, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", core.ErrPersistence, collection, id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, core.ErrNotFound)
	}
	return nil
}
