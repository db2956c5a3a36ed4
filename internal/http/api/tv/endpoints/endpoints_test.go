package endpoints_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

const testSecret = "test-secret"

// stubStore overrides only what the tv handlers touch; everything else
// panics through the embedded nil interface.
type stubStore struct {
	db.Store

	device       *model.Device
	snapshot     resolver.Snapshot
	snapshotErr  error
	plays        []int
	ingestAcked  int
	ingestErr    error
	ingestedEvts []model.PlayEvent
}

func (s *stubStore) GetDeviceByID(id int) (*model.Device, error) {
	if s.device == nil || s.device.ID != id {
		return nil, errors.New("device not found")
	}
	return s.device, nil
}

func (s *stubStore) GetDeviceByDeviceID(deviceID string) (*model.Device, error) {
	if s.device == nil || s.device.DeviceID == nil || *s.device.DeviceID != deviceID {
		return nil, errors.New("device not found")
	}
	return s.device, nil
}

func (s *stubStore) ResolutionSnapshot(deviceID int, now time.Time) (resolver.Snapshot, error) {
	return s.snapshot, s.snapshotErr
}

func (s *stubStore) RecordPlay(deviceID, itemID int, playedAt time.Time) error {
	s.plays = append(s.plays, itemID)
	return nil
}

func (s *stubStore) InsertPlayEvents(events []model.PlayEvent) (int, error) {
	s.ingestedEvts = append(s.ingestedEvts, events...)
	if s.ingestErr != nil {
		return s.ingestAcked, s.ingestErr
	}
	return len(events), nil
}

func newTestRouter(t *testing.T, store *stubStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// unreachable address: handlers must tolerate redis being down
	redisclient.InitRedis("127.0.0.1:1", "", "")

	r := gin.New()
	public := r.Group("/api/tv")
	endpoints.RegisterPairingRoutes(public, store)

	tv := r.Group("/api/tv")
	tv.Use(middleware.DeviceJWTMiddleware(testSecret, store))
	endpoints.RegisterResolutionRoutes(tv, store, resolver.New(1))
	endpoints.RegisterTelemetryRoutes(tv, store)

	token, err := middleware.GenerateDeviceJWT(store.device.ID, testSecret)
	require.NoError(t, err)
	return r, token
}

func pairedDevice() *model.Device {
	hw := "hw-1"
	sceneID := 7
	return &model.Device{ID: 1, DeviceID: &hw, Name: "lobby", Paired: true, DefaultSceneID: &sceneID}
}

func defaultSnapshot(d *model.Device) resolver.Snapshot {
	return resolver.Snapshot{
		Device: *d,
		Scenes: map[int]model.Scene{
			7: {ID: 7, Name: "fallback", ContentURL: "https://cdn.example/fallback"},
		},
	}
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolveReturnsDeviceDefault(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, token := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/api/tv/resolve", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp packets.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "default", resp.Source)
	require.NotNil(t, resp.SceneID)
	assert.Equal(t, 7, *resp.SceneID)
	assert.Equal(t, "https://cdn.example/fallback", resp.ContentRef)
	assert.Empty(t, store.plays)
}

func TestResolveRequiresValidToken(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, _ := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/api/tv/resolve", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/tv/resolve", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResolveRejectsMalformedTimestamp(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, token := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/api/tv/resolve?at=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveRecordsCampaignPlay(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	snap := defaultSnapshot(store.device)
	campaignID := 3
	now := time.Now().UTC()
	snap.DeviceEntries = []model.ScheduleEntry{{
		ID: 1, DeviceID: &store.device.ID, CampaignID: &campaignID,
		Start: now.Add(-time.Hour), End: now.Add(time.Hour), Enabled: true,
	}}
	snap.Campaigns = map[int]model.Campaign{
		3: {ID: 3, Mode: model.RotationWeight, Items: []model.CampaignItem{
			{ID: 31, SceneID: 7, Weight: 1},
		}},
	}
	store.snapshot = snap
	r, token := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/api/tv/resolve", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp packets.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "campaign", resp.Source)
	assert.Equal(t, []int{31}, store.plays)
}

func TestTelemetryAcksFullBatch(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, token := newTestRouter(t, store)

	req := packets.TelemetryRequest{Events: []packets.TelemetryEvent{
		{ID: "ev-1", DeviceID: "hw-1", ContentRef: "scene-7", StartedAt: time.Now().UTC()},
		{ID: "ev-2", DeviceID: "hw-1", ContentRef: "scene-7", StartedAt: time.Now().UTC()},
	}}
	w := doRequest(r, http.MethodPost, "/api/tv/telemetry", token, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp packets.TelemetryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Acked)
	assert.Len(t, store.ingestedEvts, 2)
}

func TestTelemetryReportsPartialPrefixOnIngestError(t *testing.T) {
	store := &stubStore{device: pairedDevice(), ingestAcked: 1, ingestErr: errors.New("db down")}
	store.snapshot = defaultSnapshot(store.device)
	r, token := newTestRouter(t, store)

	req := packets.TelemetryRequest{Events: []packets.TelemetryEvent{
		{ID: "ev-1", DeviceID: "hw-1"},
		{ID: "ev-2", DeviceID: "hw-1"},
		{ID: "ev-3", DeviceID: "hw-1"},
	}}
	w := doRequest(r, http.MethodPost, "/api/tv/telemetry", token, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp packets.TelemetryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Acked)
}

func TestTelemetryRejectsMissingEvents(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, token := newTestRouter(t, store)

	w := doRequest(r, http.MethodPost, "/api/tv/telemetry", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPairRegisterRejectsAlreadyPairedDevice(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, _ := newTestRouter(t, store)

	req := packets.RegisterPairingCodeRequest{PairingCode: "ABC123", DeviceID: "hw-1"}
	w := doRequest(r, http.MethodPost, "/api/tv/pair/register", "", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPairRegisterAcceptsUnknownDevice(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, _ := newTestRouter(t, store)

	req := packets.RegisterPairingCodeRequest{PairingCode: "ABC123", DeviceID: "hw-other"}
	w := doRequest(r, http.MethodPost, "/api/tv/pair/register", "", req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPairTokenPollBeforeClaimReturnsNotFound(t *testing.T) {
	store := &stubStore{device: pairedDevice()}
	store.snapshot = defaultSnapshot(store.device)
	r, _ := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/api/tv/pair/token?device_id=hw-other", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/api/tv/pair/token", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
