package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// stubPusher acks a fixed number of events per call, optionally failing
// after a partial ack, and remembers every event id it acknowledged.
type stubPusher struct {
	ackLimit  int // per call; <0 means ack everything
	failAfter bool
	delivered []string
	calls     int
}

func (p *stubPusher) PushTelemetry(_ context.Context, events []model.PlayEvent) (int, error) {
	p.calls++
	acked := len(events)
	if p.ackLimit >= 0 && p.ackLimit < acked {
		acked = p.ackLimit
	}
	for _, ev := range events[:acked] {
		p.delivered = append(p.delivered, ev.ID)
	}
	if p.failAfter && acked < len(events) {
		return acked, errors.New("delivery interrupted")
	}
	return acked, nil
}

func recordN(t *testing.T, tr *Tracker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, tr.Record("scene-1", time.Now().UTC(), 10*time.Second, true))
	}
}

func TestPartialAckRetainsUnacknowledgedSuffix(t *testing.T) {
	s := openTestStore(t)
	pusher := &stubPusher{ackLimit: 3, failAfter: true}
	tr := NewTracker(s, pusher, "dev-1", 10)
	recordN(t, tr, 5)

	err := tr.Flush(context.Background())
	assert.Error(t, err)

	n, err := s.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, pusher.delivered, 3)
}

func TestRetryAfterPartialAckDeliversOnlyTheSuffix(t *testing.T) {
	s := openTestStore(t)
	first := &stubPusher{ackLimit: 3, failAfter: true}
	tr := NewTracker(s, first, "dev-1", 10)
	recordN(t, tr, 5)
	_ = tr.Flush(context.Background())

	second := &stubPusher{ackLimit: -1}
	retry := NewTracker(s, second, "dev-1", 10)
	require.NoError(t, retry.Flush(context.Background()))

	// nothing delivered twice across the two attempts
	assert.Len(t, second.delivered, 2)
	for _, id := range second.delivered {
		assert.NotContains(t, first.delivered, id)
	}

	n, err := s.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFlushDrainsQueueInBatches(t *testing.T) {
	s := openTestStore(t)
	pusher := &stubPusher{ackLimit: -1}
	tr := NewTracker(s, pusher, "dev-1", 2)
	recordN(t, tr, 5)

	require.NoError(t, tr.Flush(context.Background()))

	assert.Equal(t, 3, pusher.calls)
	assert.Len(t, pusher.delivered, 5)
	n, err := s.PendingCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFlushOnEmptyQueueIsANoOp(t *testing.T) {
	s := openTestStore(t)
	pusher := &stubPusher{ackLimit: -1}
	tr := NewTracker(s, pusher, "dev-1", 10)

	require.NoError(t, tr.Flush(context.Background()))
	assert.Zero(t, pusher.calls)
}
