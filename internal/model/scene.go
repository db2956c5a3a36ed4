package model

import "time"

// Scene is a unit of displayable content. A scene may belong to a language
// group: a set of sibling scenes carrying the same design in different
// languages, exactly one of which is the group's default.
type Scene struct {
	ID              int       `db:"id"                json:"id"`
	Name            string    `db:"name"              json:"name"`
	ContentURL      string    `db:"content_url"       json:"content_url"`
	LanguageGroupID *int      `db:"language_group_id" json:"language_group_id"`
	LanguageCode    string    `db:"language_code"     json:"language_code"`
	LanguageDefault bool      `db:"language_default"  json:"language_default"`
	CreatedAt       time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"        json:"updated_at"`
}
