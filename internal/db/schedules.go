package db

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

const entryColumns = `
	id, name, device_id, group_id, scene_id, campaign_id,
	start_ts, end_ts, recurrence, recur_until, priority, enabled,
	created_at, updated_at`

func CreateScheduleEntry(e model.ScheduleEntry) (model.ScheduleEntry, error) {
	if (e.DeviceID == nil) == (e.GroupID == nil) {
		return model.ScheduleEntry{}, fmt.Errorf("entry must target exactly one device or group")
	}
	if (e.SceneID == nil) == (e.CampaignID == nil) {
		return model.ScheduleEntry{}, fmt.Errorf("entry must bind exactly one scene or campaign")
	}

	var out model.ScheduleEntry
	const q = `
	INSERT INTO schedule_entries
	  (name, device_id, group_id, scene_id, campaign_id,
	   start_ts, end_ts, recurrence, recur_until, priority, enabled, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
	RETURNING ` + entryColumns + `;`
	err := DB.Get(&out, q,
		e.Name, e.DeviceID, e.GroupID, e.SceneID, e.CampaignID,
		e.Start, e.End, e.Recurrence, e.RecurUntil, e.Priority, e.Enabled)
	if err != nil {
		log.Error().Err(err).Msg("CreateScheduleEntry failed")
		return model.ScheduleEntry{}, err
	}
	return out, nil
}

func GetScheduleEntry(id int) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := DB.Get(&e, `SELECT `+entryColumns+` FROM schedule_entries WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("entry_id", id).Msg("GetScheduleEntry failed")
		return nil, err
	}
	return &e, nil
}

func ListScheduleEntries() ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	if err := DB.Select(&out, `SELECT `+entryColumns+` FROM schedule_entries ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScheduleEntries failed")
		return nil, err
	}
	return out, nil
}

func DeleteScheduleEntry(id int) error {
	_, err := DB.Exec(`DELETE FROM schedule_entries WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("entry_id", id).Msg("DeleteScheduleEntry failed")
	}
	return err
}

// entriesForDevice returns the enabled device-level entries of one device.
func entriesForDevice(deviceID int) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	const q = `
	SELECT ` + entryColumns + `
	  FROM schedule_entries
	 WHERE device_id = $1 AND enabled = true
	 ORDER BY priority DESC, created_at DESC, id DESC;`
	if err := DB.Select(&out, q, deviceID); err != nil {
		return nil, err
	}
	return out, nil
}

// entriesForGroup returns the enabled group-level entries of one group.
func entriesForGroup(groupID int) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	const q = `
	SELECT ` + entryColumns + `
	  FROM schedule_entries
	 WHERE group_id = $1 AND enabled = true
	 ORDER BY priority DESC, created_at DESC, id DESC;`
	if err := DB.Select(&out, q, groupID); err != nil {
		return nil, err
	}
	return out, nil
}
