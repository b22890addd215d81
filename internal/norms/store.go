package norms

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

import "context"

// Store provides the active norm pack. Implementations must return the pack
// whose status is ACTIVE; anything else is a system fault the caller treats
// as fail-closed.
type Store interface {
	ActivePack(ctx context.Context) (Pack, error)
}
