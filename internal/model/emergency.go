package model

import "time"

// EmergencyOverride is the single tenant-wide directive that, while active,
// supersedes all other resolution for every targeted device. It is never
// language-resolved: the override must look identical on every screen.
type EmergencyOverride struct {
	ID           int       `db:"id"            json:"id"`
	Active       bool      `db:"active"        json:"active"`
	SceneID      int       `db:"scene_id"      json:"scene_id"`
	StartsAt     time.Time `db:"starts_at"     json:"starts_at"`
	DurationSecs *int      `db:"duration_secs" json:"duration_secs"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}

// ActiveAt reports whether the override is in force at the given instant.
// A nil duration means the override runs until cleared.
func (e EmergencyOverride) ActiveAt(now time.Time) bool {
	if !e.Active || now.Before(e.StartsAt) {
		return false
	}
	if e.DurationSecs == nil {
		return true
	}
	return now.Before(e.StartsAt.Add(time.Duration(*e.DurationSecs) * time.Second))
}
