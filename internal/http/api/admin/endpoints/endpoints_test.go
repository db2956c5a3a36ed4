package endpoints_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/endpoints"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
)

const testSecret = "test-secret"

// stubStore overrides only what the admin handlers touch and records the
// calls the tests assert on.
type stubStore struct {
	db.Store

	createdEntry *model.ScheduleEntry
	groupQueries []int
	staleDevices []int
	groupMembers []model.Device
}

func (s *stubStore) CreateScheduleEntry(e model.ScheduleEntry) (model.ScheduleEntry, error) {
	s.createdEntry = &e
	e.ID = 1
	return e, nil
}

func (s *stubStore) ListDevicesByGroup(groupID int) ([]model.Device, error) {
	s.groupQueries = append(s.groupQueries, groupID)
	return s.groupMembers, nil
}

func (s *stubStore) GetDeviceByID(id int) (*model.Device, error) {
	s.staleDevices = append(s.staleDevices, id)
	return &model.Device{ID: id}, nil
}

func (s *stubStore) DeleteGroup(id int) error { return nil }

func newAdminRouter(t *testing.T, store *stubStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// unreachable address: handlers must tolerate redis being down
	redisclient.InitRedis("127.0.0.1:1", "", "")

	r := gin.New()
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminJWTMiddleware(testSecret))
	endpoints.RegisterScheduleRoutes(admin, store)
	endpoints.RegisterGroupRoutes(admin, store)

	token, err := middleware.GenerateDeviceJWT(1, testSecret)
	require.NoError(t, err)
	return r, token
}

func doAdminRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func scheduleRequest() packets.CreateScheduleEntryRequest {
	deviceID := 4
	sceneID := 2
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return packets.CreateScheduleEntryRequest{
		Name:     "morning menu",
		DeviceID: &deviceID,
		SceneID:  &sceneID,
		Start:    start,
		End:      start.Add(2 * time.Hour),
	}
}

func TestCreateScheduleEntryDefaultsToEnabled(t *testing.T) {
	store := &stubStore{}
	r, token := newAdminRouter(t, store)

	w := doAdminRequest(r, http.MethodPost, "/api/admin/schedules", token, scheduleRequest())

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.createdEntry)
	assert.True(t, store.createdEntry.Enabled)
}

func TestCreateScheduleEntryHonorsDisabledFlag(t *testing.T) {
	store := &stubStore{}
	r, token := newAdminRouter(t, store)

	req := scheduleRequest()
	disabled := false
	req.Enabled = &disabled
	w := doAdminRequest(r, http.MethodPost, "/api/admin/schedules", token, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.createdEntry)
	assert.False(t, store.createdEntry.Enabled)
}

func TestGroupDeletionMarksOnlyGroupMembersStale(t *testing.T) {
	groupID := 9
	store := &stubStore{groupMembers: []model.Device{
		{ID: 5, GroupID: &groupID},
		{ID: 6, GroupID: &groupID},
	}}
	r, token := newAdminRouter(t, store)

	w := doAdminRequest(r, http.MethodDelete, "/api/admin/groups/9", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{9}, store.groupQueries)
	assert.Equal(t, []int{5, 6}, store.staleDevices)
}
