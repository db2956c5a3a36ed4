package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

type CampaignController struct {
	store db.Store
}

func RegisterCampaignRoutes(r gin.IRoutes, store db.Store) {
	ctl := &CampaignController{store: store}

	r.GET("/campaigns", ctl.listCampaigns)
	r.POST("/campaigns", ctl.createCampaign)
	r.GET("/campaigns/:id", ctl.getCampaign)
	r.DELETE("/campaigns/:id", ctl.deleteCampaign)
}

// GET /api/admin/campaigns
func (t *CampaignController) listCampaigns(c *gin.Context) {
	all, err := t.store.ListCampaigns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /api/admin/campaigns
//
// Rotation invariants (known mode, percentages summing to 100, sane
// daypart windows) are enforced here, at save time. The resolver assumes
// valid campaigns and falls through silently rather than erroring.
func (t *CampaignController) createCampaign(c *gin.Context) {
	var req packets.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign := model.Campaign{Name: req.Name, Mode: req.Mode}
	for i, it := range req.Items {
		campaign.Items = append(campaign.Items, model.CampaignItem{
			SceneID:         it.SceneID,
			Position:        i,
			Weight:          it.Weight,
			Percentage:      it.Percentage,
			MaxPlaysPerHour: it.MaxPlaysPerHour,
			MaxPlaysPerDay:  it.MaxPlaysPerDay,
			DaypartStart:    it.DaypartStart,
			DaypartEnd:      it.DaypartEnd,
		})
	}

	if err := campaign.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := t.store.CreateCampaign(campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/admin/campaigns/:id
func (t *CampaignController) getCampaign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	campaign, err := t.store.GetCampaignByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// DELETE /api/admin/campaigns/:id
func (t *CampaignController) deleteCampaign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := t.store.DeleteCampaign(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "campaign deleted"})
}
