package model

import "time"

// Device represents a display endpoint (a physical screen) in the system.
type Device struct {
	ID              int       `db:"id"               json:"id"`
	DeviceID        *string   `db:"device_id"        json:"device_id"`
	Name            string    `db:"name"             json:"name"`
	Location        *string   `db:"location"         json:"location"`
	GroupID         *int      `db:"group_id"         json:"group_id"`
	DisplayLanguage *string   `db:"display_language" json:"display_language"`
	DefaultSceneID  *int      `db:"default_scene_id" json:"default_scene_id"`
	EmergencyBypass bool      `db:"emergency_bypass" json:"emergency_bypass"`
	Paired          bool      `db:"paired"           json:"paired"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
}

// Group is a named collection of devices. Devices inherit the group's
// display language and default scene unless they carry their own.
type Group struct {
	ID              int       `db:"id"               json:"id"`
	Name            string    `db:"name"             json:"name"`
	Description     *string   `db:"description"      json:"description,omitempty"`
	DisplayLanguage *string   `db:"display_language" json:"display_language"`
	DefaultSceneID  *int      `db:"default_scene_id" json:"default_scene_id"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
}

// LanguageFor returns the display language the device should be served in:
// the device override wins, then the group language, then empty.
func (d Device) LanguageFor(g *Group) string {
	if d.DisplayLanguage != nil && *d.DisplayLanguage != "" {
		return *d.DisplayLanguage
	}
	if g != nil && g.DisplayLanguage != nil {
		return *g.DisplayLanguage
	}
	return ""
}
