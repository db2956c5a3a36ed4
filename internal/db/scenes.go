package db

import (
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

const sceneColumns = `
	id, name, content_url, language_group_id, language_code, language_default,
	created_at, updated_at`

func CreateScene(name, contentURL string, languageGroupID *int, languageCode string, languageDefault bool) (model.Scene, error) {
	var s model.Scene
	const q = `
	INSERT INTO scenes (name, content_url, language_group_id, language_code, language_default, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + sceneColumns + `;`
	if err := DB.Get(&s, q, name, contentURL, languageGroupID, languageCode, languageDefault); err != nil {
		log.Error().Err(err).Msg("CreateScene failed")
		return model.Scene{}, err
	}
	return s, nil
}

func GetSceneByID(id int) (*model.Scene, error) {
	var s model.Scene
	err := DB.Get(&s, `SELECT `+sceneColumns+` FROM scenes WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("scene_id", id).Msg("GetSceneByID failed")
		return nil, err
	}
	return &s, nil
}

func ListScenes() ([]model.Scene, error) {
	var out []model.Scene
	if err := DB.Select(&out, `SELECT `+sceneColumns+` FROM scenes ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScenes failed")
		return nil, err
	}
	return out, nil
}

func DeleteScene(id int) error {
	_, err := DB.Exec(`DELETE FROM scenes WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("scene_id", id).Msg("DeleteScene failed")
	}
	return err
}
