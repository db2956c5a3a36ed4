package model

import "time"

// PlayEvent is one playback telemetry record. The ID is generated on the
// device and is the server-side idempotency key: re-delivering an already
// ingested event is a no-op.
type PlayEvent struct {
	ID              string    `db:"id"               json:"id"`
	DeviceID        string    `db:"device_id"        json:"device_id"`
	ContentRef      string    `db:"content_ref"      json:"content_ref"`
	StartedAt       time.Time `db:"started_at"       json:"started_at"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	Completed       bool      `db:"completed"        json:"completed"`
}

// PlayRecord is one entry of a device's campaign play history, read by the
// rotation engine for frequency-limit eligibility.
type PlayRecord struct {
	ItemID   int       `db:"item_id"   json:"item_id"`
	PlayedAt time.Time `db:"played_at" json:"played_at"`
}
