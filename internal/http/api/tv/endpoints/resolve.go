package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

type TvController struct {
	store  db.Store
	engine *resolver.Engine
}

func NewTvController(store db.Store, engine *resolver.Engine) *TvController {
	return &TvController{store: store, engine: engine}
}

func RegisterResolutionRoutes(r gin.IRoutes, store db.Store, engine *resolver.Engine) {
	ctl := NewTvController(store, engine)

	r.GET("/resolve", ctl.resolve)
	r.GET("/refresh", ctl.refreshFlag)
}

// GET /api/tv/resolve?at=<RFC3339>
//
// Resolution reads a consistent snapshot, decides, and records the play if
// a campaign item was chosen. It never returns an error body for a valid
// device: the worst case is an explicit empty bundle.
func (t *TvController) resolve(c *gin.Context) {
	device, ok := middleware.GetCurrentDevice(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now().UTC()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
			return
		}
		now = parsed.UTC()
	}

	snap, err := t.store.ResolutionSnapshot(device.ID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res := t.engine.Resolve(snap, now)

	if res.ItemID != nil {
		if err := t.store.RecordPlay(device.ID, *res.ItemID, now); err != nil {
			// the decision stands; only frequency accounting is affected
			log.Error().Err(err).Int("device_id", device.ID).Msg("failed to record campaign play")
		}
	}

	redisclient.ClearDeviceRefresh(c, device.ID)

	log.Debug().
		Int("device_id", device.ID).
		Str("rule", string(res.Rule)).
		Str("content_ref", res.Bundle.ContentRef).
		Msg("resolved content")

	c.JSON(http.StatusOK, packets.ResolveResponse{
		Source:       string(res.Bundle.Source),
		SceneID:      res.Bundle.SceneID,
		ContentRef:   res.Bundle.ContentRef,
		LanguageCode: res.Bundle.LanguageCode,
		ResolvedAt:   res.Bundle.ResolvedAt.Format(time.RFC3339),
		Rule:         string(res.Rule),
	})
}

// GET /api/tv/refresh
func (t *TvController) refreshFlag(c *gin.Context) {
	device, ok := middleware.GetCurrentDevice(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, packets.RefreshResponse{
		NeedsRefresh: redisclient.DeviceNeedsRefresh(c, device.ID),
	})
}
