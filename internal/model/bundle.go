package model

import "time"

// Source identifies which resolution rule produced a bundle.
type Source string

const (
	SourceEmergency Source = "emergency"
	SourceSchedule  Source = "schedule"
	SourceCampaign  Source = "campaign"
	SourceDefault   Source = "default"
	SourceNone      Source = "none"
)

// ResolvedBundle is the output of one resolution: what to show, where the
// decision came from, which language was actually served, and when the
// decision was made. Immutable once produced.
type ResolvedBundle struct {
	Source       Source    `json:"source"`
	SceneID      *int      `json:"scene_id"`
	ContentRef   string    `json:"content_ref"`
	LanguageCode string    `json:"language_code"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

// Empty reports whether the bundle is the explicit "nothing to show"
// result, as opposed to resolved content.
func (b ResolvedBundle) Empty() bool {
	return b.Source == SourceNone || b.Source == ""
}

// CachedBundle is the device-side persisted copy of the last accepted
// bundle. Overwritten wholesale on each successful resolution.
type CachedBundle struct {
	Bundle   ResolvedBundle `json:"bundle"`
	StoredAt time.Time      `json:"stored_at"`
}
