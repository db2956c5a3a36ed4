// exposes a Store interface that is passed to API handlers
package db

import (
	"time"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

type Store interface {
	// device functions
	CreateDevice(name string, location *string) (model.Device, error)
	GetDeviceByID(id int) (*model.Device, error)
	GetDeviceByDeviceID(deviceID string) (*model.Device, error)
	ListDevices() ([]model.Device, error)
	ListDevicesByGroup(groupID int) ([]model.Device, error)
	UpdateDevice(id int, name *string, location *string, groupID *int, displayLanguage *string, defaultSceneID *int, emergencyBypass *bool) error
	DeleteDevice(id int) error
	PairDevice(id int, deviceID string) error

	// group functions
	CreateGroup(name string, description, displayLanguage *string, defaultSceneID *int) (model.Group, error)
	GetGroupByID(id int) (*model.Group, error)
	ListGroups() ([]model.Group, error)
	DeleteGroup(id int) error

	// scene functions
	CreateScene(name, contentURL string, languageGroupID *int, languageCode string, languageDefault bool) (model.Scene, error)
	GetSceneByID(id int) (*model.Scene, error)
	ListScenes() ([]model.Scene, error)
	DeleteScene(id int) error

	// schedule functions
	CreateScheduleEntry(e model.ScheduleEntry) (model.ScheduleEntry, error)
	GetScheduleEntry(id int) (*model.ScheduleEntry, error)
	ListScheduleEntries() ([]model.ScheduleEntry, error)
	DeleteScheduleEntry(id int) error

	// campaign functions
	CreateCampaign(c model.Campaign) (model.Campaign, error)
	GetCampaignByID(id int) (*model.Campaign, error)
	ListCampaigns() ([]model.Campaign, error)
	DeleteCampaign(id int) error

	// emergency override
	GetEmergencyOverride() (*model.EmergencyOverride, error)
	SetEmergencyOverride(sceneID int, startsAt time.Time, durationSecs *int) (model.EmergencyOverride, error)
	ClearEmergencyOverride() error

	// resolution
	ResolutionSnapshot(deviceID int, now time.Time) (resolver.Snapshot, error)
	RecordPlay(deviceID, itemID int, playedAt time.Time) error

	// telemetry
	InsertPlayEvents(events []model.PlayEvent) (int, error)
}

type pgStore struct{}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{}
}

func (s *pgStore) CreateDevice(name string, location *string) (model.Device, error) {
	return CreateDevice(name, location)
}
func (s *pgStore) GetDeviceByID(id int) (*model.Device, error) { return GetDeviceByID(id) }
func (s *pgStore) GetDeviceByDeviceID(deviceID string) (*model.Device, error) {
	return GetDeviceByDeviceID(deviceID)
}
func (s *pgStore) ListDevices() ([]model.Device, error) { return ListDevices() }
func (s *pgStore) ListDevicesByGroup(groupID int) ([]model.Device, error) {
	return ListDevicesByGroup(groupID)
}
func (s *pgStore) UpdateDevice(id int, name *string, location *string, groupID *int, displayLanguage *string, defaultSceneID *int, emergencyBypass *bool) error {
	return UpdateDevice(id, name, location, groupID, displayLanguage, defaultSceneID, emergencyBypass)
}
func (s *pgStore) DeleteDevice(id int) error               { return DeleteDevice(id) }
func (s *pgStore) PairDevice(id int, deviceID string) error { return PairDevice(id, deviceID) }

func (s *pgStore) CreateGroup(name string, description, displayLanguage *string, defaultSceneID *int) (model.Group, error) {
	return CreateGroup(name, description, displayLanguage, defaultSceneID)
}
func (s *pgStore) GetGroupByID(id int) (*model.Group, error) { return GetGroupByID(id) }
func (s *pgStore) ListGroups() ([]model.Group, error)        { return ListGroups() }
func (s *pgStore) DeleteGroup(id int) error                  { return DeleteGroup(id) }

func (s *pgStore) CreateScene(name, contentURL string, languageGroupID *int, languageCode string, languageDefault bool) (model.Scene, error) {
	return CreateScene(name, contentURL, languageGroupID, languageCode, languageDefault)
}
func (s *pgStore) GetSceneByID(id int) (*model.Scene, error) { return GetSceneByID(id) }
func (s *pgStore) ListScenes() ([]model.Scene, error)        { return ListScenes() }
func (s *pgStore) DeleteScene(id int) error                  { return DeleteScene(id) }

func (s *pgStore) CreateScheduleEntry(e model.ScheduleEntry) (model.ScheduleEntry, error) {
	return CreateScheduleEntry(e)
}
func (s *pgStore) GetScheduleEntry(id int) (*model.ScheduleEntry, error) {
	return GetScheduleEntry(id)
}
func (s *pgStore) ListScheduleEntries() ([]model.ScheduleEntry, error) {
	return ListScheduleEntries()
}
func (s *pgStore) DeleteScheduleEntry(id int) error { return DeleteScheduleEntry(id) }

func (s *pgStore) CreateCampaign(c model.Campaign) (model.Campaign, error) { return CreateCampaign(c) }
func (s *pgStore) GetCampaignByID(id int) (*model.Campaign, error)         { return GetCampaignByID(id) }
func (s *pgStore) ListCampaigns() ([]model.Campaign, error)                { return ListCampaigns() }
func (s *pgStore) DeleteCampaign(id int) error                             { return DeleteCampaign(id) }

func (s *pgStore) GetEmergencyOverride() (*model.EmergencyOverride, error) {
	return GetEmergencyOverride()
}
func (s *pgStore) SetEmergencyOverride(sceneID int, startsAt time.Time, durationSecs *int) (model.EmergencyOverride, error) {
	return SetEmergencyOverride(sceneID, startsAt, durationSecs)
}
func (s *pgStore) ClearEmergencyOverride() error { return ClearEmergencyOverride() }

func (s *pgStore) ResolutionSnapshot(deviceID int, now time.Time) (resolver.Snapshot, error) {
	return ResolutionSnapshot(deviceID, now)
}
func (s *pgStore) RecordPlay(deviceID, itemID int, playedAt time.Time) error {
	return RecordPlay(deviceID, itemID, playedAt)
}

func (s *pgStore) InsertPlayEvents(events []model.PlayEvent) (int, error) {
	return InsertPlayEvents(events)
}
