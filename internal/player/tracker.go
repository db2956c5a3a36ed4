package player

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// TelemetryPusher is the delivery boundary for queued playback events.
// *Client satisfies it; tests substitute a stub.
type TelemetryPusher interface {
	PushTelemetry(ctx context.Context, events []model.PlayEvent) (int, error)
}

// Tracker records playback telemetry into the local append-only queue and
// flushes it to the backend in original order. Recording works regardless
// of connectivity; flushing removes only the prefix the server
// acknowledged, so a failed or partial delivery loses nothing.
type Tracker struct {
	store     *Store
	pusher    TelemetryPusher
	deviceID  string
	batchSize int
}

func NewTracker(store *Store, pusher TelemetryPusher, deviceID string, batchSize int) *Tracker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Tracker{store: store, pusher: pusher, deviceID: deviceID, batchSize: batchSize}
}

// Record appends one playback observation to the queue. The generated
// event ID doubles as the server-side idempotency key.
func (t *Tracker) Record(contentRef string, startedAt time.Time, duration time.Duration, completed bool) error {
	return t.store.AppendEvent(model.PlayEvent{
		ID:              uuid.NewString(),
		DeviceID:        t.deviceID,
		ContentRef:      contentRef,
		StartedAt:       startedAt,
		DurationSeconds: int(duration.Seconds()),
		Completed:       completed,
	})
}

// Flush delivers the queue batch by batch until it is empty or a delivery
// fails. Acknowledged events are deleted before the next batch is sent,
// so a retry after a partial failure re-sends only the unacknowledged
// suffix.
func (t *Tracker) Flush(ctx context.Context) error {
	for {
		events, lastSeq, err := t.store.PendingEvents(t.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		acked, err := t.pusher.PushTelemetry(ctx, events)
		if acked > 0 {
			// translate the acked prefix length back into a queue key
			ackSeq := lastSeq
			if acked < len(events) {
				ackSeq = lastSeq - uint64(len(events)-acked)
			}
			if delErr := t.store.DeleteThrough(ackSeq); delErr != nil {
				return delErr
			}
		}
		if err != nil {
			log.Warn().Err(err).Int("acked", acked).Int("batch", len(events)).Msg("telemetry flush interrupted, suffix retained")
			return err
		}
		if acked < len(events) {
			// server accepted a strict prefix; try the rest next time
			return nil
		}
	}
}
