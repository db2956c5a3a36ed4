package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
)

type GroupController struct {
	store db.Store
}

func RegisterGroupRoutes(r gin.IRoutes, store db.Store) {
	ctl := &GroupController{store: store}

	r.GET("/groups", ctl.listGroups)
	r.POST("/groups", ctl.createGroup)
	r.GET("/groups/:id", ctl.getGroup)
	r.DELETE("/groups/:id", ctl.deleteGroup)
}

// GET /api/admin/groups
func (t *GroupController) listGroups(c *gin.Context) {
	all, err := t.store.ListGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /api/admin/groups
func (t *GroupController) createGroup(c *gin.Context) {
	var req packets.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := t.store.CreateGroup(req.Name, req.Description, req.DisplayLanguage, req.DefaultSceneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, g)
}

// GET /api/admin/groups/:id
func (t *GroupController) getGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	g, err := t.store.GetGroupByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /api/admin/groups/:id
func (t *GroupController) deleteGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	// devices in the group fall back to their own configuration
	markGroupStale(c, t.store, id)
	if err := t.store.DeleteGroup(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "group deleted"})
}
