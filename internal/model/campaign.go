package model

import (
	"fmt"
	"time"
)

// Rotation modes for campaign content sets.
const (
	RotationWeight     = "weight"
	RotationPercentage = "percentage"
	RotationSequence   = "sequence"
	RotationRandom     = "random"
)

// Campaign is a named set of content items that rotate within the schedule
// entries the campaign is bound to.
type Campaign struct {
	ID        int            `db:"id"         json:"id"`
	Name      string         `db:"name"       json:"name"`
	Mode      string         `db:"mode"       json:"mode"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
	Items     []CampaignItem `db:"-"          json:"items,omitempty"`
}

// CampaignItem is one rotating entry of a campaign. Weight drives weight
// mode, Percentage drives percentage mode, Position drives sequence mode.
// Frequency caps and the daypart window gate eligibility in every mode.
type CampaignItem struct {
	ID              int     `db:"id"                 json:"id"`
	CampaignID      int     `db:"campaign_id"        json:"campaign_id"`
	SceneID         int     `db:"scene_id"           json:"scene_id"`
	Position        int     `db:"position"           json:"position"`
	Weight          int     `db:"weight"             json:"weight"`
	Percentage      int     `db:"percentage"         json:"percentage"`
	MaxPlaysPerHour *int    `db:"max_plays_per_hour" json:"max_plays_per_hour"`
	MaxPlaysPerDay  *int    `db:"max_plays_per_day"  json:"max_plays_per_day"`
	DaypartStart    *string `db:"daypart_start"      json:"daypart_start"`
	DaypartEnd      *string `db:"daypart_end"        json:"daypart_end"`
}

// Validate checks the invariants the resolver assumes. It runs at
// configuration-save time; resolution never re-validates.
func (c Campaign) Validate() error {
	switch c.Mode {
	case RotationWeight, RotationPercentage, RotationSequence, RotationRandom:
	default:
		return fmt.Errorf("unknown rotation mode %q", c.Mode)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("campaign needs at least one item")
	}
	if c.Mode == RotationPercentage {
		sum := 0
		for _, it := range c.Items {
			if it.Percentage < 0 {
				return fmt.Errorf("item %d: negative percentage", it.ID)
			}
			sum += it.Percentage
		}
		if sum != 100 {
			return fmt.Errorf("percentages sum to %d, want 100", sum)
		}
	}
	if c.Mode == RotationWeight {
		for _, it := range c.Items {
			if it.Weight < 0 {
				return fmt.Errorf("item %d: negative weight", it.ID)
			}
		}
	}
	for _, it := range c.Items {
		if (it.DaypartStart == nil) != (it.DaypartEnd == nil) {
			return fmt.Errorf("item %d: daypart window needs both start and end", it.ID)
		}
		if it.DaypartStart != nil {
			if _, err := ParseClock(*it.DaypartStart); err != nil {
				return fmt.Errorf("item %d: %w", it.ID, err)
			}
			if _, err := ParseClock(*it.DaypartEnd); err != nil {
				return fmt.Errorf("item %d: %w", it.ID, err)
			}
		}
	}
	return nil
}

// ParseClock parses an "HH:MM" wall-clock string into minutes after
// midnight.
func ParseClock(s string) (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return hh*60 + mm, nil
}
