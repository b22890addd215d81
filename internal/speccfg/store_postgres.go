package speccfg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"imexspec/pkg/platform/sentinel"
	"imexspec/pkg/platform/tx"
)

// PostgresStore persists drafts in the spec_drafts table. The configuration
// travels as a JSONB document; the lifecycle columns are relational so
// listings and status filters stay cheap.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed draft store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// querier resolves to the surrounding transaction when one is present in the
// context.
func (s *PostgresStore) querier(ctx context.Context) tx.Querier {
	return tx.Runner(ctx, s.db)
}

func (s *PostgresStore) Create(ctx context.Context, d Draft) error {
	doc, err := json.Marshal(d.Configuration)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	_, err = s.querier(ctx).ExecContext(ctx, `
		INSERT INTO spec_drafts
			(id, spec_code, status, imex_code, missing_fields, is_complete,
			 rejection_reason, configuration, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.SpecCode, string(d.Status), d.ImexCode, pq.Array(d.MissingFields),
		d.IsComplete, d.RejectionReason, doc, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("draft %s: %w", d.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Draft, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT id, spec_code, status, imex_code, missing_fields, is_complete,
		       rejection_reason, configuration, created_by, created_at, updated_at
		FROM spec_drafts WHERE id = $1`,
		id,
	)
	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return Draft{}, fmt.Errorf("load draft: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) Update(ctx context.Context, d Draft) error {
	doc, err := json.Marshal(d.Configuration)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	res, err := s.querier(ctx).ExecContext(ctx, `
		UPDATE spec_drafts SET
			spec_code = $2, status = $3, imex_code = $4, missing_fields = $5,
			is_complete = $6, rejection_reason = $7, configuration = $8, updated_at = $9
		WHERE id = $1`,
		d.ID, d.SpecCode, string(d.Status), d.ImexCode, pq.Array(d.MissingFields),
		d.IsComplete, d.RejectionReason, doc, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft %s: %w", d.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, status Status, limit int) ([]Draft, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, spec_code, status, imex_code, missing_fields, is_complete,
		       rejection_reason, configuration, created_by, created_at, updated_at
		FROM spec_drafts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY updated_at DESC LIMIT $2`
		args = append(args, string(status), limit)
	} else {
		query += ` ORDER BY updated_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Transact runs fn inside a database transaction carried via context, so
// every store call inside fn joins it.
func (s *PostgresStore) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.Execute(ctx, s.db, fn)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (Draft, error) {
	var (
		d      Draft
		status string
		doc    []byte
	)
	err := row.Scan(&d.ID, &d.SpecCode, &status, &d.ImexCode, pq.Array(&d.MissingFields),
		&d.IsComplete, &d.RejectionReason, &doc, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Draft{}, err
	}
	d.Status = Status(status)
	if err := json.Unmarshal(doc, &d.Configuration); err != nil {
		return Draft{}, fmt.Errorf("decode configuration: %w", err)
	}
	return d, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
