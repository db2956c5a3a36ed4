package resolver

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

// Rule names the resolution step that produced a bundle, for diagnostics.
type Rule string

const (
	RuleEmergency      Rule = "emergency"
	RuleDeviceSchedule Rule = "device_schedule"
	RuleGroupSchedule  Rule = "group_schedule"
	RuleCampaign       Rule = "campaign"
	RuleDefault        Rule = "default"
	RuleNone           Rule = "none"
)

// Snapshot is everything one resolution needs, assembled by the caller.
// Resolve performs no I/O: the same snapshot and instant always produce
// the same decision (up to the engine's seeded randomness for rotation).
type Snapshot struct {
	Device        model.Device
	Group         *model.Group
	Emergency     *model.EmergencyOverride
	DeviceEntries []model.ScheduleEntry
	GroupEntries  []model.ScheduleEntry
	Campaigns     map[int]model.Campaign
	Scenes        map[int]model.Scene
	Siblings      map[int][]model.Scene // language group id -> members
	History       PlayHistory
}

// PlayHistory is a device's recent campaign plays, newest last.
type PlayHistory []model.PlayRecord

// CountSince counts plays of an item at or after the given instant.
func (h PlayHistory) CountSince(itemID int, since time.Time) int {
	n := 0
	for _, r := range h {
		if r.ItemID == itemID && !r.PlayedAt.Before(since) {
			n++
		}
	}
	return n
}

// lastOf returns the most recent play whose item belongs to the given set.
func (h PlayHistory) lastOf(items map[int]bool) (int, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if items[h[i].ItemID] {
			return h[i].ItemID, true
		}
	}
	return 0, false
}

// Resolution is the outcome of a Resolve call. ItemID is set when a
// campaign item was chosen so the caller can append it to the device's
// play history.
type Resolution struct {
	Bundle model.ResolvedBundle
	Rule   Rule
	ItemID *int
}

// Engine decides what a device should display. It is safe for concurrent
// use; the seeded random source exists only so rotation is reproducible
// in tests.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an engine whose rotation draws come from the given seed.
func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Resolve walks the resolution rules in priority order and returns the
// first match. It never fails for a valid device: malformed or exhausted
// campaigns fall through to the next rule, and the worst case is an
// explicit empty bundle.
func (e *Engine) Resolve(snap Snapshot, now time.Time) Resolution {
	if snap.Emergency != nil && snap.Emergency.ActiveAt(now) && !snap.Device.EmergencyBypass {
		scene, ok := snap.Scenes[snap.Emergency.SceneID]
		if ok {
			// Language resolution is bypassed: the override must be
			// instantly recognizable, not localized.
			return Resolution{
				Bundle: bundleFor(model.SourceEmergency, scene, scene.LanguageCode, now),
				Rule:   RuleEmergency,
			}
		}
	}

	lang := snap.Device.LanguageFor(snap.Group)

	if res, ok := e.resolveEntries(snap.DeviceEntries, RuleDeviceSchedule, snap, lang, now); ok {
		return res
	}
	if res, ok := e.resolveEntries(snap.GroupEntries, RuleGroupSchedule, snap, lang, now); ok {
		return res
	}

	if id := defaultSceneID(snap); id != nil {
		if scene, ok := snap.Scenes[*id]; ok {
			scene = ResolveLanguage(scene, lang, snap.Siblings)
			return Resolution{
				Bundle: bundleFor(model.SourceDefault, scene, scene.LanguageCode, now),
				Rule:   RuleDefault,
			}
		}
	}

	return Resolution{
		Bundle: model.ResolvedBundle{Source: model.SourceNone, ResolvedAt: now},
		Rule:   RuleNone,
	}
}

// resolveEntries tries the active entries of one target level, best first.
// A campaign entry whose item set filters down to nothing is skipped and
// the next entry gets its turn.
func (e *Engine) resolveEntries(entries []model.ScheduleEntry, rule Rule, snap Snapshot, lang string, now time.Time) (Resolution, bool) {
	for _, entry := range rankedActive(entries, now) {
		if entry.SceneID != nil {
			scene, ok := snap.Scenes[*entry.SceneID]
			if !ok {
				continue
			}
			scene = ResolveLanguage(scene, lang, snap.Siblings)
			return Resolution{
				Bundle: bundleFor(model.SourceSchedule, scene, scene.LanguageCode, now),
				Rule:   rule,
			}, true
		}
		if entry.CampaignID != nil {
			campaign, ok := snap.Campaigns[*entry.CampaignID]
			if !ok {
				continue
			}
			item, err := e.ChooseFromCampaign(campaign, snap.History, now)
			if err != nil {
				// zero eligible items; fall through to the next entry
				continue
			}
			scene, ok := snap.Scenes[item.SceneID]
			if !ok {
				continue
			}
			scene = ResolveLanguage(scene, lang, snap.Siblings)
			itemID := item.ID
			return Resolution{
				Bundle: bundleFor(model.SourceCampaign, scene, scene.LanguageCode, now),
				Rule:   RuleCampaign,
				ItemID: &itemID,
			}, true
		}
	}
	return Resolution{}, false
}

// rankedActive filters entries down to those active at now and orders them
// highest priority first, ties broken by most recent creation.
func rankedActive(entries []model.ScheduleEntry, now time.Time) []model.ScheduleEntry {
	active := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.ActiveAt(now) {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority > active[j].Priority
		}
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID > active[j].ID
	})
	return active
}

func defaultSceneID(snap Snapshot) *int {
	if snap.Device.DefaultSceneID != nil {
		return snap.Device.DefaultSceneID
	}
	if snap.Group != nil {
		return snap.Group.DefaultSceneID
	}
	return nil
}

func bundleFor(src model.Source, scene model.Scene, lang string, now time.Time) model.ResolvedBundle {
	id := scene.ID
	return model.ResolvedBundle{
		Source:       src,
		SceneID:      &id,
		ContentRef:   scene.ContentURL,
		LanguageCode: lang,
		ResolvedAt:   now,
	}
}
