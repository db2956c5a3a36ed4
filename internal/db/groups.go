package db

import (
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

const groupColumns = `
	id, name, description, display_language, default_scene_id, created_at, updated_at`

func CreateGroup(name string, description, displayLanguage *string, defaultSceneID *int) (model.Group, error) {
	var g model.Group
	const q = `
	INSERT INTO device_groups (name, description, display_language, default_scene_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + groupColumns + `;`
	if err := DB.Get(&g, q, name, description, displayLanguage, defaultSceneID); err != nil {
		log.Error().Err(err).Msg("CreateGroup failed")
		return model.Group{}, err
	}
	return g, nil
}

func GetGroupByID(id int) (*model.Group, error) {
	var g model.Group
	err := DB.Get(&g, `SELECT `+groupColumns+` FROM device_groups WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("GetGroupByID failed")
		return nil, err
	}
	return &g, nil
}

func ListGroups() ([]model.Group, error) {
	var out []model.Group
	if err := DB.Select(&out, `SELECT `+groupColumns+` FROM device_groups ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListGroups failed")
		return nil, err
	}
	return out, nil
}

func DeleteGroup(id int) error {
	_, err := DB.Exec(`DELETE FROM device_groups WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("DeleteGroup failed")
	}
	return err
}
