package audit

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists audit events. Append must never mutate e.
type Store interface {
	Append(ctx context.Context, e Event) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]Event, error)
}
