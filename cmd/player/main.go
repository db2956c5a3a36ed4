package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/model"
	"github.com/Nixie-Tech-LLC/pharos/internal/player"
)

type Environment struct {
	ServerURL     string
	DeviceToken   string
	DeviceID      string
	DataDir       string
	MQTTBrokerURL string
	PollInterval  time.Duration
	FlushInterval time.Duration
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	_ = godotenv.Load()

	env := Environment{
		ServerURL:     os.Getenv("SERVER_URL"),
		DeviceToken:   os.Getenv("DEVICE_TOKEN"),
		DeviceID:      os.Getenv("DEVICE_ID"),
		DataDir:       os.Getenv("DATA_DIR"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		PollInterval:  durationEnv("POLL_INTERVAL", 30*time.Second),
		FlushInterval: durationEnv("FLUSH_INTERVAL", time.Minute),
	}
	if env.ServerURL == "" || env.DeviceToken == "" || env.DeviceID == "" {
		log.Fatal().Msg("SERVER_URL, DEVICE_TOKEN and DEVICE_ID are required")
	}
	if env.DataDir == "" {
		env.DataDir = "./data"
	}
	return env
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatal().Str("var", key).Str("value", raw).Msg("invalid duration")
	}
	return d
}

func main() {
	env := LoadEnvironment()

	store, err := player.Open(env.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}
	defer store.Close()

	client := player.NewClient(env.ServerURL, env.DeviceToken, 15*time.Second)
	tracker := player.NewTracker(store, client, env.DeviceID, 0)

	cfg := player.DefaultConfig()
	cfg.NormalInterval = env.PollInterval

	coordinator := player.NewCoordinator(client, store, player.RealClock(), cfg, func(b model.ResolvedBundle) {
		log.Info().
			Str("source", string(b.Source)).
			Str("content_ref", b.ContentRef).
			Str("language", b.LanguageCode).
			Msg("bundle updated")
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// server-pushed refresh is an optimization over polling; skip it
	// entirely when no broker is configured
	if env.MQTTBrokerURL != "" {
		subscribeRefresh(env, coordinator)
	}

	go flushLoop(ctx, tracker, env.FlushInterval)

	// show whatever we have immediately, even before the first poll
	if cached, found, err := store.Bundle(); err == nil && found {
		log.Info().Str("content_ref", cached.Bundle.ContentRef).Time("stored_at", cached.StoredAt).Msg("starting from cached bundle")
	}

	if err := coordinator.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("coordinator stopped")
	}
}

// subscribeRefresh connects to the broker and maps refresh messages for
// this device (or the broadcast topic) to coordinator wakeups.
func subscribeRefresh(env Environment, coordinator *player.Coordinator) {
	opts := mqtt.NewClientOptions().
		AddBroker(env.MQTTBrokerURL).
		SetClientID("pharos-player-" + env.DeviceID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Warn().Err(token.Error()).Msg("mqtt unavailable, relying on polling")
		return
	}

	onRefresh := func(_ mqtt.Client, _ mqtt.Message) {
		log.Debug().Msg("refresh pushed by server")
		coordinator.Refresh()
	}
	for _, topic := range []string{middleware.RefreshTopic(env.DeviceID), middleware.RefreshTopic("all")} {
		if token := client.Subscribe(topic, 1, onRefresh); token.Wait() && token.Error() != nil {
			log.Warn().Err(token.Error()).Str("topic", topic).Msg("mqtt subscribe failed")
		}
	}
}

func flushLoop(ctx context.Context, tracker *player.Tracker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tracker.Flush(ctx); err != nil {
				log.Warn().Err(err).Msg("telemetry flush failed, events retained")
			}
		}
	}
}
