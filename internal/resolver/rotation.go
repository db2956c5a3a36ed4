package resolver

import (
	"errors"
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// ErrNoEligibleItems is returned when frequency limits and dayparting
// filter a campaign down to nothing. The content resolver treats it as
// "skip this entry", never as a hard failure.
var ErrNoEligibleItems = errors.New("campaign has no eligible items")

// ChooseFromCampaign picks the next item of a campaign for one resolution
// call. Eligibility filtering applies in every mode; the mode then decides
// how the remaining items share plays. Sequence mode is fully
// deterministic given the same history; the other modes draw from the
// engine's seeded source.
func (e *Engine) ChooseFromCampaign(c model.Campaign, hist PlayHistory, now time.Time) (model.CampaignItem, error) {
	eligible := eligibleItems(c.Items, hist, now)
	if len(eligible) == 0 {
		return model.CampaignItem{}, ErrNoEligibleItems
	}

	switch c.Mode {
	case model.RotationSequence:
		return nextInSequence(c.Items, eligible, hist), nil
	case model.RotationPercentage:
		return e.pickWeighted(eligible, func(it model.CampaignItem) int { return it.Percentage }), nil
	case model.RotationRandom:
		return eligible[e.intn(len(eligible))], nil
	default: // weight
		return e.pickWeighted(eligible, func(it model.CampaignItem) int { return it.Weight }), nil
	}
}

// eligibleItems drops items that hit their hourly or daily play cap in the
// current calendar hour/day, and items outside their daypart window.
func eligibleItems(items []model.CampaignItem, hist PlayHistory, now time.Time) []model.CampaignItem {
	hourStart := now.Truncate(time.Hour)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := make([]model.CampaignItem, 0, len(items))
	for _, it := range items {
		if it.MaxPlaysPerHour != nil && hist.CountSince(it.ID, hourStart) >= *it.MaxPlaysPerHour {
			continue
		}
		if it.MaxPlaysPerDay != nil && hist.CountSince(it.ID, dayStart) >= *it.MaxPlaysPerDay {
			continue
		}
		if !inDaypart(it, now) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// inDaypart checks the item's wall-clock window. A window whose end is
// before its start wraps past midnight. Items without a window always
// pass; windows the save-time validator would reject are ignored here.
func inDaypart(it model.CampaignItem, now time.Time) bool {
	if it.DaypartStart == nil || it.DaypartEnd == nil {
		return true
	}
	start, err := model.ParseClock(*it.DaypartStart)
	if err != nil {
		return true
	}
	end, err := model.ParseClock(*it.DaypartEnd)
	if err != nil {
		return true
	}
	minute := now.Hour()*60 + now.Minute()
	if start <= end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

// nextInSequence advances one position past the last item of this campaign
// found in the history, skipping ineligible items, wrapping around.
func nextInSequence(all, eligible []model.CampaignItem, hist PlayHistory) model.CampaignItem {
	ids := make(map[int]bool, len(all))
	posByID := make(map[int]int, len(all))
	for _, it := range all {
		ids[it.ID] = true
		posByID[it.ID] = it.Position
	}

	eligibleByPos := make(map[int]model.CampaignItem, len(eligible))
	for _, it := range eligible {
		eligibleByPos[it.Position] = it
	}

	start := 0
	if lastID, ok := hist.lastOf(ids); ok {
		start = posByID[lastID] + 1
	}
	n := len(all)
	for i := 0; i < n; i++ {
		if it, ok := eligibleByPos[(start+i)%n]; ok {
			return it
		}
	}
	// eligible is non-empty, but positions may not cover 0..n-1; fall
	// back to the first eligible item rather than looping forever
	return eligible[0]
}

// pickWeighted draws one item with probability proportional to its share.
// A zero total degrades to a uniform draw.
func (e *Engine) pickWeighted(items []model.CampaignItem, share func(model.CampaignItem) int) model.CampaignItem {
	total := 0
	for _, it := range items {
		if s := share(it); s > 0 {
			total += s
		}
	}
	if total == 0 {
		return items[e.intn(len(items))]
	}
	r := e.intn(total)
	for _, it := range items {
		s := share(it)
		if s <= 0 {
			continue
		}
		if r < s {
			return it
		}
		r -= s
	}
	return items[len(items)-1]
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}
