package speccfg

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists specification drafts. Transact runs fn atomically where the
// backend supports it; implementations without transactions run fn directly.
type Store interface {
	Create(ctx context.Context, d Draft) error
	Get(ctx context.Context, id string) (Draft, error)
	Update(ctx context.Context, d Draft) error
	List(ctx context.Context, status Status, limit int) ([]Draft, error)
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}
