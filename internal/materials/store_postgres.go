package materials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"imexspec/pkg/platform/sentinel"
)

// PostgresStore serves material compatibility data from PostgreSQL. Rows in
// material_compatibility are keyed by construction standard, so the same
// material code can appear under several norms with different flags. The
// compatible_with column is a text[] scanned through pq.Array.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed material store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const materialColumns = `code, name, role, nace_qualified, nace_temperature_min_c,
	nace_hardness_max_hrc, fire_test_compatible, low_emission_compatible, compatible_with`

func (s *PostgresStore) ListByRole(ctx context.Context, normCode string, role Role) ([]Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+materialColumns+` FROM material_compatibility
		 WHERE norm_code = $1 AND role = $2 ORDER BY code`,
		normCode, string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("role %q under norm %q: %w", role, normCode, sentinel.ErrNotFound)
	}
	return list, nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, normCode string, role Role, code string) (Material, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+materialColumns+` FROM material_compatibility
		 WHERE norm_code = $1 AND role = $2 AND code = $3`,
		normCode, string(role), code,
	)
	m, err := scanMaterial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, fmt.Errorf("material %q for role %q under norm %q: %w", code, role, normCode, sentinel.ErrNotFound)
	}
	if err != nil {
		return Material{}, err
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (Material, error) {
	var (
		m       Material
		role    string
		minTemp sql.NullFloat64
		maxHRC  sql.NullFloat64
	)
	err := row.Scan(&m.Code, &m.Name, &role, &m.NaceQualified, &minTemp, &maxHRC,
		&m.FireTestCompatible, &m.LowEmissionCompat, pq.Array(&m.CompatibleWith))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Material{}, err
		}
		return Material{}, fmt.Errorf("scan material: %w", err)
	}
	m.Role = Role(role)
	if minTemp.Valid {
		m.NaceTemperatureMinC = &minTemp.Float64
	}
	if maxHRC.Valid {
		m.NaceHardnessMaxHRC = &maxHRC.Float64
	}
	return m, nil
}
