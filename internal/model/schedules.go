package model

import "time"

// Recurrence values for schedule entries.
const (
	RecurrenceNone   = "none"
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

// ScheduleEntry binds a scene or a campaign to a device or group for a
// half-open time window [Start, End), optionally repeating. Overlapping
// entries for the same target are ranked by priority; ties go to the most
// recently created entry.
type ScheduleEntry struct {
	ID         int        `db:"id"          json:"id"`
	Name       string     `db:"name"        json:"name"`
	DeviceID   *int       `db:"device_id"   json:"device_id"`
	GroupID    *int       `db:"group_id"    json:"group_id"`
	SceneID    *int       `db:"scene_id"    json:"scene_id"`
	CampaignID *int       `db:"campaign_id" json:"campaign_id"`
	Start      time.Time  `db:"start_ts"    json:"start"`
	End        time.Time  `db:"end_ts"      json:"end"`
	Recurrence string     `db:"recurrence"  json:"recurrence"`
	RecurUntil *time.Time `db:"recur_until" json:"recur_until"`
	Priority   int        `db:"priority"    json:"priority"`
	Enabled    bool       `db:"enabled"     json:"enabled"`
	CreatedAt  time.Time  `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"  json:"updated_at"`
}

// ActiveAt reports whether the entry's window, projected by its recurrence
// rule, covers the given instant.
func (e ScheduleEntry) ActiveAt(now time.Time) bool {
	if !e.Enabled {
		return false
	}
	var step time.Duration
	switch e.Recurrence {
	case RecurrenceDaily:
		step = 24 * time.Hour
	case RecurrenceWeekly:
		step = 7 * 24 * time.Hour
	default:
		return !now.Before(e.Start) && now.Before(e.End)
	}
	if now.Before(e.Start) {
		return false
	}
	n := now.Sub(e.Start) / step
	occStart := e.Start.Add(n * step)
	if e.RecurUntil != nil && occStart.After(*e.RecurUntil) {
		return false
	}
	occEnd := occStart.Add(e.End.Sub(e.Start))
	return !now.Before(occStart) && now.Before(occEnd)
}
