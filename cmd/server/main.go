package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/pharos/internal/config"
	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/redis"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)

	// MQTT is best-effort: devices fall back to polling when the broker
	// is down, so a failed connect must not block startup
	if cfg.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(cfg.MQTTBrokerURL)
	}
	if err := middleware.InitMQTT("pharos-server"); err != nil {
		log.Warn().Err(err).Msg("mqtt unavailable, device refresh falls back to polling")
	}
	defer middleware.CleanupMQTT()

	store := db.NewStore()
	engine := resolver.New(time.Now().UnixNano())

	r := gin.Default()
	RegisterRoutes(r, cfg, store, engine)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
