package db

import (
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/rs/zerolog/log"
)

const itemColumns = `
	id, campaign_id, scene_id, position, weight, percentage,
	max_plays_per_hour, max_plays_per_day, daypart_start, daypart_end`

// CreateCampaign inserts a campaign and its items in one transaction.
// Callers validate the campaign first; the database only enforces shape.
func CreateCampaign(c model.Campaign) (model.Campaign, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.Campaign{}, err
	}
	defer tx.Rollback()

	var out model.Campaign
	const q = `
	INSERT INTO campaigns (name, mode, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, mode, created_at, updated_at;`
	if err := tx.Get(&out, q, c.Name, c.Mode); err != nil {
		log.Error().Err(err).Msg("CreateCampaign failed")
		return model.Campaign{}, err
	}

	const iq = `
	INSERT INTO campaign_items
	  (campaign_id, scene_id, position, weight, percentage,
	   max_plays_per_hour, max_plays_per_day, daypart_start, daypart_end)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	RETURNING ` + itemColumns + `;`
	for i, it := range c.Items {
		var row model.CampaignItem
		if err := tx.Get(&row, iq,
			out.ID, it.SceneID, i, it.Weight, it.Percentage,
			it.MaxPlaysPerHour, it.MaxPlaysPerDay, it.DaypartStart, it.DaypartEnd); err != nil {
			log.Error().Err(err).Int("campaign_id", out.ID).Msg("insert campaign item failed")
			return model.Campaign{}, err
		}
		out.Items = append(out.Items, row)
	}

	if err := tx.Commit(); err != nil {
		return model.Campaign{}, err
	}
	return out, nil
}

func GetCampaignByID(id int) (*model.Campaign, error) {
	var c model.Campaign
	err := DB.Get(&c, `SELECT id, name, mode, created_at, updated_at FROM campaigns WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("campaign_id", id).Msg("GetCampaignByID failed")
		return nil, err
	}
	if err := DB.Select(&c.Items, `
		SELECT `+itemColumns+`
		  FROM campaign_items
		 WHERE campaign_id = $1
		 ORDER BY position;`, id); err != nil {
		log.Error().Err(err).Int("campaign_id", id).Msg("load campaign items failed")
		return nil, err
	}
	return &c, nil
}

func ListCampaigns() ([]model.Campaign, error) {
	var out []model.Campaign
	if err := DB.Select(&out, `SELECT id, name, mode, created_at, updated_at FROM campaigns ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListCampaigns failed")
		return nil, err
	}
	return out, nil
}

func DeleteCampaign(id int) error {
	_, err := DB.Exec(`DELETE FROM campaigns WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("campaign_id", id).Msg("DeleteCampaign failed")
	}
	return err
}

// campaignsByIDs loads the given campaigns with their items.
func campaignsByIDs(ids []int) (map[int]model.Campaign, error) {
	out := make(map[int]model.Campaign, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		c, err := GetCampaignByID(id)
		if err != nil {
			return nil, err
		}
		out[id] = *c
	}
	return out, nil
}
