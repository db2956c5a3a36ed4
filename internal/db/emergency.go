package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

// The emergency override is a single tenant-wide row; id = 1 always.

func GetEmergencyOverride() (*model.EmergencyOverride, error) {
	var e model.EmergencyOverride
	err := DB.Get(&e, `
		SELECT id, active, scene_id, starts_at, duration_secs, updated_at
		  FROM emergency_overrides
		 WHERE id = 1;`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("GetEmergencyOverride failed")
		return nil, err
	}
	return &e, nil
}

func SetEmergencyOverride(sceneID int, startsAt time.Time, durationSecs *int) (model.EmergencyOverride, error) {
	var e model.EmergencyOverride
	const q = `
	INSERT INTO emergency_overrides (id, active, scene_id, starts_at, duration_secs, updated_at)
	VALUES (1, true, $1, $2, $3, now())
	ON CONFLICT (id) DO UPDATE
	   SET active = true, scene_id = $1, starts_at = $2, duration_secs = $3, updated_at = now()
	RETURNING id, active, scene_id, starts_at, duration_secs, updated_at;`
	if err := DB.Get(&e, q, sceneID, startsAt, durationSecs); err != nil {
		log.Error().Err(err).Msg("SetEmergencyOverride failed")
		return model.EmergencyOverride{}, err
	}
	return e, nil
}

func ClearEmergencyOverride() error {
	_, err := DB.Exec(`UPDATE emergency_overrides SET active = false, updated_at = now() WHERE id = 1;`)
	if err != nil {
		log.Error().Err(err).Msg("ClearEmergencyOverride failed")
	}
	return err
}
