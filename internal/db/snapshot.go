package db

import (
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

// ResolutionSnapshot assembles everything the resolver needs for one
// device: the device and its group, the emergency override, both entry
// levels, referenced campaigns and scenes (with language siblings), and
// the last day of play history. The resolver itself never touches the
// database.
func ResolutionSnapshot(deviceID int, now time.Time) (resolver.Snapshot, error) {
	var snap resolver.Snapshot

	device, err := GetDeviceByID(deviceID)
	if err != nil {
		return snap, err
	}
	snap.Device = *device

	if device.GroupID != nil {
		group, err := GetGroupByID(*device.GroupID)
		if err != nil {
			return snap, err
		}
		snap.Group = group
	}

	snap.Emergency, err = GetEmergencyOverride()
	if err != nil {
		return snap, err
	}

	snap.DeviceEntries, err = entriesForDevice(device.ID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("load device entries failed")
		return snap, err
	}
	if device.GroupID != nil {
		snap.GroupEntries, err = entriesForGroup(*device.GroupID)
		if err != nil {
			log.Error().Err(err).Int("device_id", deviceID).Msg("load group entries failed")
			return snap, err
		}
	}

	var campaignIDs []int
	for _, e := range append(append([]model.ScheduleEntry{}, snap.DeviceEntries...), snap.GroupEntries...) {
		if e.CampaignID != nil {
			campaignIDs = append(campaignIDs, *e.CampaignID)
		}
	}
	snap.Campaigns, err = campaignsByIDs(campaignIDs)
	if err != nil {
		return snap, err
	}

	snap.Scenes, snap.Siblings, err = scenesForSnapshot(snap)
	if err != nil {
		return snap, err
	}

	since := now.Add(-24 * time.Hour)
	history, err := playHistorySince(device.ID, since)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("load play history failed")
		return snap, err
	}
	snap.History = resolver.PlayHistory(history)

	return snap, nil
}

// scenesForSnapshot loads every scene a snapshot can reference, then all
// members of any language group those scenes belong to.
func scenesForSnapshot(snap resolver.Snapshot) (map[int]model.Scene, map[int][]model.Scene, error) {
	idSet := map[int]bool{}
	add := func(id *int) {
		if id != nil {
			idSet[*id] = true
		}
	}

	add(snap.Device.DefaultSceneID)
	if snap.Group != nil {
		add(snap.Group.DefaultSceneID)
	}
	if snap.Emergency != nil {
		idSet[snap.Emergency.SceneID] = true
	}
	for _, e := range snap.DeviceEntries {
		add(e.SceneID)
	}
	for _, e := range snap.GroupEntries {
		add(e.SceneID)
	}
	for _, c := range snap.Campaigns {
		for _, it := range c.Items {
			idSet[it.SceneID] = true
		}
	}

	scenes := map[int]model.Scene{}
	siblings := map[int][]model.Scene{}
	if len(idSet) == 0 {
		return scenes, siblings, nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, int64(id))
	}

	var rows []model.Scene
	if err := DB.Select(&rows, `
		SELECT `+sceneColumns+` FROM scenes WHERE id = ANY($1);`, pq.Array(ids)); err != nil {
		log.Error().Err(err).Msg("load snapshot scenes failed")
		return nil, nil, err
	}

	groupSet := map[int64]bool{}
	for _, s := range rows {
		scenes[s.ID] = s
		if s.LanguageGroupID != nil {
			groupSet[int64(*s.LanguageGroupID)] = true
		}
	}

	if len(groupSet) > 0 {
		groupIDs := make([]int64, 0, len(groupSet))
		for id := range groupSet {
			groupIDs = append(groupIDs, id)
		}
		var members []model.Scene
		if err := DB.Select(&members, `
			SELECT `+sceneColumns+` FROM scenes
			 WHERE language_group_id = ANY($1)
			 ORDER BY id;`, pq.Array(groupIDs)); err != nil {
			log.Error().Err(err).Msg("load language siblings failed")
			return nil, nil, err
		}
		for _, m := range members {
			siblings[*m.LanguageGroupID] = append(siblings[*m.LanguageGroupID], m)
		}
	}

	return scenes, siblings, nil
}
