package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set redis key")
	}
}

func Get(ctx context.Context, key string) (string, error) {
	val, err := Rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func Del(ctx context.Context, key string) {
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete redis key")
	}
}

// Refresh markers tell a device that its cached bundle may be stale.
// They are set on configuration mutations and cleared when the device
// next resolves successfully.

func refreshKey(deviceID int) string {
	return fmt.Sprintf("device:%d:needs_refresh", deviceID)
}

func MarkDeviceRefresh(ctx context.Context, deviceID int) {
	Set(ctx, refreshKey(deviceID), "1", 0)
}

func ClearDeviceRefresh(ctx context.Context, deviceID int) {
	Del(ctx, refreshKey(deviceID))
}

func DeviceNeedsRefresh(ctx context.Context, deviceID int) bool {
	val, err := Get(ctx, refreshKey(deviceID))
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("failed to read refresh marker")
		return false
	}
	return val != ""
}

// Pairing codes are short-lived: a device registers its code, an operator
// claims it, and the code is deleted on claim.

func pairingKey(code string) string {
	return fmt.Sprintf("pairing:%s", code)
}

func StorePairingCode(ctx context.Context, code, deviceID string) {
	Set(ctx, pairingKey(code), deviceID, 15*time.Minute)
}

// ClaimPairingCode returns the hardware id registered under a code and
// consumes the code. Empty result means unknown or expired code.
func ClaimPairingCode(ctx context.Context, code string) (string, error) {
	val, err := Get(ctx, pairingKey(code))
	if err != nil || val == "" {
		return "", err
	}
	Del(ctx, pairingKey(code))
	return val, nil
}

// Issued device tokens are parked here until the device polls for them
// after an operator completes the pairing.

func tokenKey(deviceID string) string {
	return fmt.Sprintf("device_token:%s", deviceID)
}

func StoreDeviceToken(ctx context.Context, deviceID, token string) {
	Set(ctx, tokenKey(deviceID), token, 15*time.Minute)
}

// ClaimDeviceToken hands the parked token to the device and consumes it.
// Empty result means pairing has not completed yet.
func ClaimDeviceToken(ctx context.Context, deviceID string) (string, error) {
	val, err := Get(ctx, tokenKey(deviceID))
	if err != nil || val == "" {
		return "", err
	}
	Del(ctx, tokenKey(deviceID))
	return val, nil
}
