package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
)

type SceneController struct {
	store db.Store
}

func RegisterSceneRoutes(r gin.IRoutes, store db.Store) {
	ctl := &SceneController{store: store}

	r.GET("/scenes", ctl.listScenes)
	r.POST("/scenes", ctl.createScene)
	r.GET("/scenes/:id", ctl.getScene)
	r.DELETE("/scenes/:id", ctl.deleteScene)
}

// GET /api/admin/scenes
func (t *SceneController) listScenes(c *gin.Context) {
	all, err := t.store.ListScenes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /api/admin/scenes
//
// A scene joining a language group must carry a language code; marking it
// the group default is how the language resolver's invariant (exactly one
// default member) is maintained by the authoring side.
func (t *SceneController) createScene(c *gin.Context) {
	var req packets.CreateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LanguageGroupID != nil && req.LanguageCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language group members need a language code"})
		return
	}
	s, err := t.store.CreateScene(req.Name, req.ContentURL, req.LanguageGroupID, req.LanguageCode, req.LanguageDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s)
}

// GET /api/admin/scenes/:id
func (t *SceneController) getScene(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s, err := t.store.GetSceneByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scene not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /api/admin/scenes/:id
func (t *SceneController) deleteScene(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := t.store.DeleteScene(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "scene deleted"})
}
