package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives events for streaming; Publisher satisfies it.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Recorder appends events to the store synchronously and fans them out to an
// optional sink in the background. Store failures surface to the caller; sink
// failures are logged and dropped so a broker outage never blocks a decision.
type Recorder struct {
	store  Store
	sink   Sink
	logger *slog.Logger

	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

// NewRecorder creates a recorder. sink may be nil.
func NewRecorder(store Store, sink Sink, logger *slog.Logger) *Recorder {
	r := &Recorder{
		store:  store,
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 256),
	}
	if sink != nil {
		r.wg.Add(1)
		go r.drain()
	}
	return r
}

// Record stamps and persists an event.
func (r *Recorder) Record(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	if err := r.store.Append(ctx, e); err != nil {
		return err
	}

	if r.sink != nil {
		select {
		case r.queue <- e:
		default:
			r.logger.Warn("audit stream queue full, dropping event",
				"event_id", e.ID,
				"subject", e.Subject,
			)
		}
	}
	return nil
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for e := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.sink.Publish(ctx, e); err != nil {
			r.logger.Warn("audit stream publish failed",
				"event_id", e.ID,
				"subject", e.Subject,
				"error", err.Error(),
			)
		}
		cancel()
	}
}

// Close stops the background worker after the queue is drained.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
		r.wg.Wait()
	})
}
