package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
)

type EmergencyController struct {
	store db.Store
}

func RegisterEmergencyRoutes(r gin.IRoutes, store db.Store) {
	ctl := &EmergencyController{store: store}

	r.GET("/emergency", ctl.getOverride)
	r.PUT("/emergency", ctl.setOverride)
	r.DELETE("/emergency", ctl.clearOverride)
}

// GET /api/admin/emergency
func (t *EmergencyController) getOverride(c *gin.Context) {
	e, err := t.store.GetEmergencyOverride()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if e == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, e)
}

// PUT /api/admin/emergency
//
// Activating the override supersedes all scheduling on every device, so
// every device is marked stale and signalled immediately.
func (t *EmergencyController) setOverride(c *gin.Context) {
	var req packets.SetEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := t.store.GetSceneByID(req.SceneID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scene"})
		return
	}

	startsAt := time.Now().UTC()
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}

	e, err := t.store.SetEmergencyOverride(req.SceneID, startsAt, req.DurationSecs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Warn().Int("scene_id", e.SceneID).Time("starts_at", e.StartsAt).Msg("emergency override activated")
	markAllStale(c, t.store)
	c.JSON(http.StatusOK, e)
}

// DELETE /api/admin/emergency
func (t *EmergencyController) clearOverride(c *gin.Context) {
	if err := t.store.ClearEmergencyOverride(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Warn().Msg("emergency override cleared")
	markAllStale(c, t.store)
	c.JSON(http.StatusOK, gin.H{"success": "override cleared"})
}
