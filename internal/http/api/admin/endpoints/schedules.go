package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

type ScheduleController struct {
	store db.Store
}

func RegisterScheduleRoutes(r gin.IRoutes, store db.Store) {
	ctl := &ScheduleController{store: store}

	r.GET("/schedules", ctl.listEntries)
	r.POST("/schedules", ctl.createEntry)
	r.GET("/schedules/:id", ctl.getEntry)
	r.DELETE("/schedules/:id", ctl.deleteEntry)
}

// GET /api/admin/schedules
func (t *ScheduleController) listEntries(c *gin.Context) {
	all, err := t.store.ListScheduleEntries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /api/admin/schedules
func (t *ScheduleController) createEntry(c *gin.Context) {
	var req packets.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.End.After(req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}
	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}
	switch recurrence {
	case model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown recurrence"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	entry, err := t.store.CreateScheduleEntry(model.ScheduleEntry{
		Name:       req.Name,
		DeviceID:   req.DeviceID,
		GroupID:    req.GroupID,
		SceneID:    req.SceneID,
		CampaignID: req.CampaignID,
		Start:      req.Start.UTC(),
		End:        req.End.UTC(),
		Recurrence: recurrence,
		RecurUntil: req.RecurUntil,
		Priority:   req.Priority,
		Enabled:    enabled,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	markTargetStale(c, t.store, entry.DeviceID, entry.GroupID)
	c.JSON(http.StatusCreated, entry)
}

// GET /api/admin/schedules/:id
func (t *ScheduleController) getEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	entry, err := t.store.GetScheduleEntry(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /api/admin/schedules/:id
func (t *ScheduleController) deleteEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	entry, err := t.store.GetScheduleEntry(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	if err := t.store.DeleteScheduleEntry(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	markTargetStale(c, t.store, entry.DeviceID, entry.GroupID)
	c.JSON(http.StatusOK, gin.H{"success": "entry deleted"})
}
