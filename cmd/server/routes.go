package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/pharos/internal/config"
	"github.com/Nixie-Tech-LLC/pharos/internal/db"
	adminapi "github.com/Nixie-Tech-LLC/pharos/internal/http/api/admin/endpoints"
	tvapi "github.com/Nixie-Tech-LLC/pharos/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/pharos/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/pharos/internal/resolver"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, engine *resolver.Engine) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	// pairing registration is the only unauthenticated device call
	tvPublic := r.Group("/api/tv")
	tvapi.RegisterPairingRoutes(tvPublic, store)

	tv := r.Group("/api/tv")
	tv.Use(middleware.DeviceJWTMiddleware(cfg.JWTSecret, store))
	tvapi.RegisterResolutionRoutes(tv, store, engine)
	tvapi.RegisterTelemetryRoutes(tv, store)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminJWTMiddleware(cfg.JWTSecret))
	adminapi.RegisterDeviceRoutes(admin, store, cfg.JWTSecret)
	adminapi.RegisterGroupRoutes(admin, store)
	adminapi.RegisterSceneRoutes(admin, store)
	adminapi.RegisterScheduleRoutes(admin, store)
	adminapi.RegisterCampaignRoutes(admin, store)
	adminapi.RegisterEmergencyRoutes(admin, store)
}
