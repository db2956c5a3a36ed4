package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/packets"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
)

type PairingController struct {
	store db.Store
}

func RegisterPairingRoutes(r gin.IRoutes, store db.Store) {
	ctl := &PairingController{store: store}

	r.POST("/pair/register", ctl.registerPairingCode)
	r.GET("/pair/token", ctl.claimToken)
}

// registerPairingCode binds a JSON pairing request, checks that the device
// isn't already paired, and stores the pairing code in Redis until an
// operator claims it.
func (p *PairingController) registerPairingCode(c *gin.Context) {
	var request packets.RegisterPairingCodeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if device, err := p.store.GetDeviceByDeviceID(request.DeviceID); err == nil && device.Paired {
		log.Error().Str("device_id", request.DeviceID).Msg("device is already paired")
		c.JSON(http.StatusBadRequest, gin.H{"error": "device is already paired"})
		return
	}

	redisclient.StorePairingCode(c, request.PairingCode, request.DeviceID)

	c.JSON(http.StatusOK, gin.H{"device_id": request.DeviceID})
}

// claimToken is polled by a device that has shown its pairing code. Once
// an operator claims the code the device's token is waiting here; until
// then the device keeps polling.
func (p *PairingController) claimToken(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	token, err := redisclient.ClaimDeviceToken(c, deviceID)
	if err != nil || token == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "pairing not completed"})
		return
	}

	c.JSON(http.StatusOK, packets.PairResponse{DeviceID: deviceID, Token: token})
}
