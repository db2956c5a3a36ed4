package packets

import "time"

// REQUESTS FOR /api/admin/*

type CreateDeviceRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateDeviceRequest struct {
	Name            *string `json:"name"`
	Location        *string `json:"location"`
	GroupID         *int    `json:"group_id"`
	DisplayLanguage *string `json:"display_language"`
	DefaultSceneID  *int    `json:"default_scene_id"`
	EmergencyBypass *bool   `json:"emergency_bypass"`
}

type ClaimPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
}

type CreateGroupRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	DisplayLanguage *string `json:"display_language"`
	DefaultSceneID  *int    `json:"default_scene_id"`
}

type CreateSceneRequest struct {
	Name            string `json:"name" binding:"required"`
	ContentURL      string `json:"content_url" binding:"required"`
	LanguageGroupID *int   `json:"language_group_id"`
	LanguageCode    string `json:"language_code"`
	LanguageDefault bool   `json:"language_default"`
}

type CreateScheduleEntryRequest struct {
	Name       string     `json:"name" binding:"required"`
	DeviceID   *int       `json:"device_id"`
	GroupID    *int       `json:"group_id"`
	SceneID    *int       `json:"scene_id"`
	CampaignID *int       `json:"campaign_id"`
	Start      time.Time  `json:"start" binding:"required"`
	End        time.Time  `json:"end" binding:"required"`
	Recurrence string     `json:"recurrence"`
	RecurUntil *time.Time `json:"recur_until"`
	Priority   int        `json:"priority"`
	Enabled    *bool      `json:"enabled"` // omitted means enabled
}

type CampaignItemRequest struct {
	SceneID         int     `json:"scene_id" binding:"required"`
	Weight          int     `json:"weight"`
	Percentage      int     `json:"percentage"`
	MaxPlaysPerHour *int    `json:"max_plays_per_hour"`
	MaxPlaysPerDay  *int    `json:"max_plays_per_day"`
	DaypartStart    *string `json:"daypart_start"`
	DaypartEnd      *string `json:"daypart_end"`
}

type CreateCampaignRequest struct {
	Name  string                `json:"name" binding:"required"`
	Mode  string                `json:"mode" binding:"required"`
	Items []CampaignItemRequest `json:"items" binding:"required"`
}

type SetEmergencyRequest struct {
	SceneID      int        `json:"scene_id" binding:"required"`
	StartsAt     *time.Time `json:"starts_at"`
	DurationSecs *int       `json:"duration_secs"`
}
