package materials

import "context"

// Store exposes the material candidates per construction standard and role.
// Compatibility is scoped to a norm: two standards can qualify entirely
// different candidate sets for the same role.
type Store interface {
	ListByRole(ctx context.Context, normCode string, role Role) ([]Material, error)
	FindByCode(ctx context.Context, normCode string, role Role, code string) (Material, error)
}
