package packets

import "time"

// REQUESTS FOR /api/tv/*

// RegisterPairingCodeRequest is posted by an unpaired device showing a
// pairing code on screen.
type RegisterPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DeviceID    string `json:"device_id" binding:"required"`
}

// TelemetryEvent mirrors model.PlayEvent on the wire.
type TelemetryEvent struct {
	ID              string    `json:"id" binding:"required"`
	DeviceID        string    `json:"device_id" binding:"required"`
	ContentRef      string    `json:"content_ref"`
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds int       `json:"duration_seconds"`
	Completed       bool      `json:"completed"`
}

// TelemetryRequest carries an ordered batch of playback events.
type TelemetryRequest struct {
	Events []TelemetryEvent `json:"events" binding:"required"`
}
