package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"imexspec/pkg/platform/sentinel"
)

// PostgresStore serves the catalog from PostgreSQL. Rows are keyed by
// (category, code) and ordered by position so listings stay stable.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context, category Category) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, imex_code, label FROM catalog_items WHERE category = $1 ORDER BY position`,
		string(category),
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Code, &item.ImexCode, &item.Label); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("category %q: %w", category, sentinel.ErrNotFound)
	}
	return items, nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, category Category, code string) (Item, error) {
	var item Item
	err := s.db.QueryRowContext(ctx,
		`SELECT code, imex_code, label FROM catalog_items WHERE category = $1 AND code = $2`,
		string(category), code,
	).Scan(&item.Code, &item.ImexCode, &item.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("code %q in %q: %w", code, category, sentinel.ErrNotFound)
	}
	if err != nil {
		return Item{}, fmt.Errorf("find catalog item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) FindByImexCode(ctx context.Context, category Category, imexCode string) (Item, error) {
	var item Item
	err := s.db.QueryRowContext(ctx,
		`SELECT code, imex_code, label FROM catalog_items
		 WHERE category = $1 AND imex_code = $2 ORDER BY position LIMIT 1`,
		string(category), imexCode,
	).Scan(&item.Code, &item.ImexCode, &item.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("imex code %q in %q: %w", imexCode, category, sentinel.ErrNotFound)
	}
	if err != nil {
		return Item{}, fmt.Errorf("find catalog item by imex code: %w", err)
	}
	return item, nil
}
