package db

import (
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

const deviceColumns = `
	id, device_id, name, location, group_id, display_language,
	default_scene_id, emergency_bypass, paired, created_at, updated_at`

func CreateDevice(name string, location *string) (model.Device, error) {
	var d model.Device
	const q = `
	INSERT INTO devices (name, location, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING ` + deviceColumns + `;`
	if err := DB.Get(&d, q, name, location); err != nil {
		log.Error().Err(err).Msg("CreateDevice failed")
		return model.Device{}, err
	}
	return d, nil
}

func GetDeviceByID(id int) (*model.Device, error) {
	var d model.Device
	err := DB.Get(&d, `SELECT `+deviceColumns+` FROM devices WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("GetDeviceByID failed")
		return nil, err
	}
	return &d, nil
}

func GetDeviceByDeviceID(deviceID string) (*model.Device, error) {
	var d model.Device
	err := DB.Get(&d, `SELECT `+deviceColumns+` FROM devices WHERE device_id = $1;`, deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("GetDeviceByDeviceID failed")
		return nil, err
	}
	return &d, nil
}

func ListDevices() ([]model.Device, error) {
	var out []model.Device
	if err := DB.Select(&out, `SELECT `+deviceColumns+` FROM devices ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListDevices failed")
		return nil, err
	}
	return out, nil
}

func ListDevicesByGroup(groupID int) ([]model.Device, error) {
	var out []model.Device
	if err := DB.Select(&out, `SELECT `+deviceColumns+` FROM devices WHERE group_id = $1 ORDER BY id;`, groupID); err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("ListDevicesByGroup failed")
		return nil, err
	}
	return out, nil
}

func UpdateDevice(id int, name *string, location *string, groupID *int, displayLanguage *string, defaultSceneID *int, emergencyBypass *bool) error {
	const q = `
	UPDATE devices
	   SET name             = COALESCE($1, name),
	       location         = COALESCE($2, location),
	       group_id         = COALESCE($3, group_id),
	       display_language = COALESCE($4, display_language),
	       default_scene_id = COALESCE($5, default_scene_id),
	       emergency_bypass = COALESCE($6, emergency_bypass),
	       updated_at       = now()
	 WHERE id = $7;`
	if _, err := DB.Exec(q, name, location, groupID, displayLanguage, defaultSceneID, emergencyBypass, id); err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("UpdateDevice failed")
		return err
	}
	return nil
}

func DeleteDevice(id int) error {
	_, err := DB.Exec(`DELETE FROM devices WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("DeleteDevice failed")
	}
	return err
}

// PairDevice attaches the hardware identifier claimed during pairing.
func PairDevice(id int, deviceID string) error {
	_, err := DB.Exec(`
	UPDATE devices
	   SET device_id = $1, paired = true, updated_at = now()
	 WHERE id = $2;`, deviceID, id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Str("device_id", deviceID).Msg("PairDevice failed")
	}
	return err
}
