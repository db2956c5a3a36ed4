package packets

// RESPONSES FOR /api/admin/*

// DeviceResponse mirrors model.Device but flattens times to RFC3339.
type DeviceResponse struct {
	ID              int     `json:"id"`
	DeviceID        *string `json:"device_id"`
	Name            string  `json:"name"`
	Location        *string `json:"location"`
	GroupID         *int    `json:"group_id"`
	DisplayLanguage *string `json:"display_language"`
	DefaultSceneID  *int    `json:"default_scene_id"`
	EmergencyBypass bool    `json:"emergency_bypass"`
	Paired          bool    `json:"paired"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}
