//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"imexspec/pkg/testutil/containers"
)

func TestPublisherRoundTrip(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()

	const topic = "imexspec.audit.test"

	pub, err := NewPublisher(ctx, rp.Brokers, topic)
	require.NoError(t, err)
	t.Cleanup(pub.Close)

	sent := Event{
		ID:         "evt-1",
		Kind:       KindPublicationDecision,
		Actor:      "eng.silva",
		Subject:    "IMEX-ESFERA-abc",
		Outcome:    "approved",
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, pub.Publish(ctx, sent))

	consumer := rp.NewClient(t,
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.NotEmpty(t, records)

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, sent.Subject, got.Subject)
	assert.Equal(t, "IMEX-ESFERA-abc", string(records[0].Key))
}
