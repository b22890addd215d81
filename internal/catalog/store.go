package catalog

import "context"

// Store exposes read access to the catalog. Lookups that miss return
// sentinel.ErrNotFound wrapped by the concrete store.
type Store interface {
	List(ctx context.Context, category Category) ([]Item, error)
	FindByCode(ctx context.Context, category Category, code string) (Item, error)
	FindByImexCode(ctx context.Context, category Category, imexCode string) (Item, error)
}
