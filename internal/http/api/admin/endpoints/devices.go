package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
)

type DeviceController struct {
	store     db.Store
	jwtSecret string
}

func RegisterDeviceRoutes(r gin.IRoutes, store db.Store, jwtSecret string) {
	ctl := &DeviceController{store: store, jwtSecret: jwtSecret}

	r.GET("/devices", ctl.listDevices)
	r.POST("/devices", ctl.createDevice)
	r.GET("/devices/:id", ctl.getDevice)
	r.PUT("/devices/:id", ctl.updateDevice)
	r.DELETE("/devices/:id", ctl.deleteDevice)

	// pairing
	r.POST("/devices/:id/pair", ctl.claimPairingCode)
}

func deviceResponse(d model.Device) packets.DeviceResponse {
	return packets.DeviceResponse{
		ID:              d.ID,
		DeviceID:        d.DeviceID,
		Name:            d.Name,
		Location:        d.Location,
		GroupID:         d.GroupID,
		DisplayLanguage: d.DisplayLanguage,
		DefaultSceneID:  d.DefaultSceneID,
		EmergencyBypass: d.EmergencyBypass,
		Paired:          d.Paired,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/devices
func (t *DeviceController) listDevices(c *gin.Context) {
	all, err := t.store.ListDevices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]packets.DeviceResponse, 0, len(all))
	for _, d := range all {
		out = append(out, deviceResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/devices
func (t *DeviceController) createDevice(c *gin.Context) {
	var req packets.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := t.store.CreateDevice(req.Name, req.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, deviceResponse(d))
}

// GET /api/admin/devices/:id
func (t *DeviceController) getDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	d, err := t.store.GetDeviceByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}
	c.JSON(http.StatusOK, deviceResponse(*d))
}

// PUT /api/admin/devices/:id
//
// Changing a device's group, language or default content invalidates its
// cached bundle, so the device is marked stale.
func (t *DeviceController) updateDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req packets.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := t.store.UpdateDevice(id, req.Name, req.Location, req.GroupID, req.DisplayLanguage, req.DefaultSceneID, req.EmergencyBypass); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	markDeviceStale(c, t.store, id)
	c.JSON(http.StatusOK, gin.H{"success": "device updated"})
}

// DELETE /api/admin/devices/:id
func (t *DeviceController) deleteDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := t.store.DeleteDevice(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "device deleted"})
}

// POST /api/admin/devices/:id/pair
//
// Claims the code a device registered, binds the hardware id to the device
// row, and issues the device its token.
func (t *DeviceController) claimPairingCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req packets.ClaimPairingCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hardwareID, err := redisclient.ClaimPairingCode(c, req.PairingCode)
	if err != nil || hardwareID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired pairing code"})
		return
	}

	if err := t.store.PairDevice(id, hardwareID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.GenerateDeviceJWT(id, t.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("failed to sign device token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	// the device collects its token on its next /pair/token poll
	redisclient.StoreDeviceToken(c, hardwareID, token)

	c.JSON(http.StatusOK, gin.H{"device_id": hardwareID, "token": token})
}
