package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

type TelemetryController struct {
	store db.Store
}

func RegisterTelemetryRoutes(r gin.IRoutes, store db.Store) {
	ctl := &TelemetryController{store: store}

	r.POST("/telemetry", ctl.ingest)
}

// POST /api/tv/telemetry
//
// Ingests a batch in original order. Event IDs are idempotency keys, so a
// device re-flushing after a partial-success ambiguity can not double-count
// anything. The acked count covers the accepted prefix only; the device
// retains the rest.
func (t *TelemetryController) ingest(c *gin.Context) {
	device, ok := middleware.GetCurrentDevice(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req packets.TelemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := make([]model.PlayEvent, 0, len(req.Events))
	for _, ev := range req.Events {
		events = append(events, model.PlayEvent{
			ID:              ev.ID,
			DeviceID:        ev.DeviceID,
			ContentRef:      ev.ContentRef,
			StartedAt:       ev.StartedAt,
			DurationSeconds: ev.DurationSeconds,
			Completed:       ev.Completed,
		})
	}

	acked, err := t.store.InsertPlayEvents(events)
	if err != nil {
		log.Error().Err(err).Int("device_id", device.ID).Int("acked", acked).Msg("telemetry batch partially ingested")
	}

	c.JSON(http.StatusOK, packets.TelemetryResponse{Acked: acked})
}
