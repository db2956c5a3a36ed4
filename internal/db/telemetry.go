package db

import (
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

// RecordPlay appends one campaign play to a device's history. Appends are
// per-device; no cross-device coordination is needed.
func RecordPlay(deviceID, itemID int, playedAt time.Time) error {
	_, err := DB.Exec(`
	INSERT INTO play_history (device_id, item_id, played_at)
	VALUES ($1, $2, $3);`, deviceID, itemID, playedAt)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Int("item_id", itemID).Msg("RecordPlay failed")
	}
	return err
}

// playHistorySince loads a device's plays at or after the given instant,
// oldest first.
func playHistorySince(deviceID int, since time.Time) ([]model.PlayRecord, error) {
	var out []model.PlayRecord
	const q = `
	SELECT item_id, played_at
	  FROM play_history
	 WHERE device_id = $1 AND played_at >= $2
	 ORDER BY played_at, id;`
	if err := DB.Select(&out, q, deviceID, since); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertPlayEvents ingests a telemetry batch in order. Each event's ID is
// the idempotency key: re-delivered events are no-ops and still count as
// acknowledged. Returns how many events of the prefix were accepted; on a
// mid-batch error the count covers only the prefix before it.
func InsertPlayEvents(events []model.PlayEvent) (int, error) {
	const q = `
	INSERT INTO telemetry_events (id, device_id, content_ref, started_at, duration_seconds, completed)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING;`
	for i, ev := range events {
		if _, err := DB.Exec(q, ev.ID, ev.DeviceID, ev.ContentRef, ev.StartedAt, ev.DurationSeconds, ev.Completed); err != nil {
			log.Error().Err(err).Str("event_id", ev.ID).Msg("InsertPlayEvents failed")
			return i, err
		}
	}
	return len(events), nil
}
