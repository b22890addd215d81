package speccfg

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"imexspec/pkg/platform/sentinel"
)

// InMemoryStore keeps drafts in memory. Development default.
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewInMemoryStore creates an empty draft store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{drafts: make(map[string]Draft)}
}

func (s *InMemoryStore) Create(_ context.Context, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.drafts[d.ID]; exists {
		return fmt.Errorf("draft %s: %w", d.ID, sentinel.ErrConflict)
	}
	s.drafts[d.ID] = d
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	return d, nil
}

func (s *InMemoryStore) Update(_ context.Context, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[d.ID]; !ok {
		return fmt.Errorf("draft %s: %w", d.ID, sentinel.ErrNotFound)
	}
	s.drafts[d.ID] = d
	return nil
}

func (s *InMemoryStore) List(_ context.Context, status Status, limit int) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Draft
	for _, d := range s.drafts {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Transact has no atomicity to offer in memory; it just runs fn.
func (s *InMemoryStore) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
