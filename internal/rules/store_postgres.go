package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore serves the rule table from PostgreSQL. The condition variant
// is stored as a nullable pair (string_value, bool_value); exactly one side is
// set per row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed rule store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListRules(ctx context.Context, valveType string) ([]Rule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(valve_type, ''), condition_attribute, condition_string_value,
		        condition_bool_value, target_attribute, action, allowed_values,
		        COALESCE(suggested_value, ''), COALESCE(error_message, ''),
		        COALESCE(warning_message, ''), priority
		 FROM validation_rules
		 WHERE active AND (valve_type IS NULL OR valve_type = $1)
		 ORDER BY priority DESC, id`,
		valveType,
	)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var (
			r        Rule
			strVal   sql.NullString
			boolVal  sql.NullBool
			action   string
		)
		err := rows.Scan(&r.ID, &r.ValveType, &r.Condition.Attribute, &strVal, &boolVal,
			&r.TargetAttribute, &action, pq.Array(&r.AllowedValues),
			&r.SuggestedValue, &r.ErrorMessage, &r.WarningMessage, &r.Priority)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if strVal.Valid {
			r.Condition.StringValue = &strVal.String
		}
		if boolVal.Valid {
			r.Condition.BoolValue = &boolVal.Bool
		}
		r.Action = Action(action)
		r.Active = true
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListRequiredFields(ctx context.Context, valveType string) ([]RequiredField, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name FROM required_fields
		 WHERE active AND (valve_type = '*' OR valve_type = $1)
		 ORDER BY code`,
		valveType,
	)
	if err != nil {
		return nil, fmt.Errorf("list required fields: %w", err)
	}
	defer rows.Close()

	var out []RequiredField
	for rows.Next() {
		var f RequiredField
		if err := rows.Scan(&f.Code, &f.Name); err != nil {
			return nil, fmt.Errorf("scan required field: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate required fields: %w", err)
	}
	return out, nil
}
