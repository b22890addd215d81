package rules

import "context"

// Store provides the rule table and the required-field list. Both queries are
// scoped to a valve type: rows bound to another valve type are excluded, rows
// with no valve type always apply.
type Store interface {
	ListRules(ctx context.Context, valveType string) ([]Rule, error)
	ListRequiredFields(ctx context.Context, valveType string) ([]RequiredField, error)
}
