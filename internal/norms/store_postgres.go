package norms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"imexspec/pkg/platform/sentinel"
)

// PostgresStore serves norm packs from PostgreSQL. Each pack is one row with
// the full document as JSONB; the partial unique index on status guarantees
// at most one ACTIVE row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed norm pack store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ActivePack(ctx context.Context) (Pack, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM norm_packs WHERE status = 'ACTIVE'`,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Pack{}, fmt.Errorf("no active norm pack: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return Pack{}, fmt.Errorf("load active norm pack: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(doc, &pack); err != nil {
		return Pack{}, fmt.Errorf("decode norm pack document: %w", err)
	}
	return pack, nil
}

// ActivePackCount reports how many packs are marked ACTIVE.
func (s *PostgresStore) ActivePackCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM norm_packs WHERE status = 'ACTIVE'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active norm packs: %w", err)
	}
	return count, nil
}
