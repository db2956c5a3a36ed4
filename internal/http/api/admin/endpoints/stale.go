package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	redisclient "github.com/Nixie-Tech-LLC/pharos/internal/redis"
)

// markDeviceStale flags a single device's cached bundle and pushes the
// out-of-band refresh signal if the device is reachable over MQTT.
func markDeviceStale(c *gin.Context, store db.Store, deviceID int) {
	redisclient.MarkDeviceRefresh(c, deviceID)
	device, err := store.GetDeviceByID(deviceID)
	if err != nil || device.DeviceID == nil {
		return
	}
	middleware.NotifyDeviceRefresh(*device.DeviceID)
}

// markGroupStale flags every device of a group.
func markGroupStale(c *gin.Context, store db.Store, groupID int) {
	devices, err := store.ListDevicesByGroup(groupID)
	if err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("failed to list devices for refresh marking")
		return
	}
	for _, d := range devices {
		markDeviceStale(c, store, d.ID)
	}
}

// markAllStale flags every device; used by tenant-wide mutations such as
// the emergency override.
func markAllStale(c *gin.Context, store db.Store) {
	devices, err := store.ListDevices()
	if err != nil {
		log.Error().Err(err).Msg("failed to list devices for refresh marking")
		return
	}
	for _, d := range devices {
		redisclient.MarkDeviceRefresh(c, d.ID)
	}
	middleware.NotifyAllDevices()
}

// markTargetStale flags whichever target a schedule entry points at.
func markTargetStale(c *gin.Context, store db.Store, deviceID, groupID *int) {
	if deviceID != nil {
		markDeviceStale(c, store, *deviceID)
	}
	if groupID != nil {
		markGroupStale(c, store, *groupID)
	}
}
