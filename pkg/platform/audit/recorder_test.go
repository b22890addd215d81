package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Publish(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error { return errors.New("disk full") }
func (failingStore) ListBySubject(context.Context, string, int) ([]Event, error) {
	return nil, nil
}

func TestRecorderStampsAndStores(t *testing.T) {
	store := NewInMemoryStore()
	rec := NewRecorder(store, nil, slog.New(slog.DiscardHandler))
	defer rec.Close()

	err := rec.Record(context.Background(), Event{
		Kind:    KindPublicationDecision,
		Actor:   "eng.silva",
		Subject: "IMEX-ESFERA-abc123",
		Outcome: "approved",
	})
	require.NoError(t, err)

	events, err := store.ListBySubject(context.Background(), "IMEX-ESFERA-abc123", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestRecorderFansOutToSink(t *testing.T) {
	sink := &captureSink{}
	rec := NewRecorder(NewInMemoryStore(), sink, slog.New(slog.DiscardHandler))

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Record(context.Background(), Event{
			Kind:    KindStatusTransition,
			Subject: "IMEX-GAVETA-x",
			Outcome: "SUBMITTED",
		}))
	}
	rec.Close()

	assert.Len(t, sink.all(), 3)
}

func TestRecorderStoreFailureSurfaces(t *testing.T) {
	rec := NewRecorder(failingStore{}, nil, slog.New(slog.DiscardHandler))
	defer rec.Close()

	err := rec.Record(context.Background(), Event{Subject: "x"})
	assert.Error(t, err)
}

func TestInMemoryStoreNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, Event{
			ID:         string(rune('a' + i)),
			Subject:    "s",
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	events, err := store.ListBySubject(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e", events[0].ID)
	assert.Equal(t, "d", events[1].ID)
}
