package packets

// RESPONSES FOR /api/tv/*

// ResolveResponse is the wire form of a resolved content bundle. Stable
// under repeated identical requests.
type ResolveResponse struct {
	Source       string `json:"source"`
	SceneID      *int   `json:"scene_id"`
	ContentRef   string `json:"content_ref"`
	LanguageCode string `json:"language_code"`
	ResolvedAt   string `json:"resolved_at"`
	Rule         string `json:"rule"`
}

// PairResponse carries the device token issued when a pairing code is
// claimed.
type PairResponse struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

// TelemetryResponse reports how many events of the batch prefix were
// acknowledged. The device drops exactly that prefix from its queue.
type TelemetryResponse struct {
	Acked int `json:"acked"`
}

// RefreshResponse reports whether the device's cached bundle may be stale.
type RefreshResponse struct {
	NeedsRefresh bool `json:"needs_refresh"`
}
