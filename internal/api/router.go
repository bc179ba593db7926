// Package api provides the HTTP API for the push relay.
package api

import (
	"path"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bouzuya/pushrelay/internal/api/handler"
	"github.com/bouzuya/pushrelay/internal/api/middleware"
	"github.com/bouzuya/pushrelay/internal/relay"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	Metrics      *middleware.Metrics
	RelayService *relay.Service

	// BasePath is the prefix all routes are nested under. Default: /lab/fcm
	BasePath string

	// PublicDir is the directory containing the static web client.
	// Asset routes are omitted when empty.
	PublicDir string
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/lab/fcm"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)

	tokenHandler := handler.NewTokenHandler(cfg.RelayService)
	notificationHandler := handler.NewNotificationHandler(cfg.RelayService)
	adminHandler := handler.NewAdminHandler(cfg.RelayService)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)

	publicRateLimit := middleware.RateLimitByIP(middleware.PublicRateLimit)
	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)

	r.Route(basePath, func(r chi.Router) {
		// JSON API
		r.Group(func(r chi.Router) {
			r.Use(middleware.ContentTypeJSON)

			// Token registration (public)
			r.Group(func(r chi.Router) {
				r.Use(publicRateLimit)
				r.Post("/tokens", tokenHandler.CreateToken)
				r.Delete("/tokens/{tokenId}", tokenHandler.DeleteToken)
				r.Post("/tokens/{tokenId}/notifications", notificationHandler.CreateTestNotification)
			})

			// Admin operations (shared secret)
			r.Route("/admin", func(r chi.Router) {
				r.Use(adminRateLimit)
				r.Use(middleware.AdminSecret)
				r.Get("/tokens", adminHandler.ListTokens)
				r.Post("/notifications", adminHandler.CreateNotification)
			})

			r.Get("/ops/health", opsHandler.HealthCheck)
		})

		// Static web client
		if cfg.PublicDir != "" {
			assets := handler.NewAssetsHandler(cfg.PublicDir)
			r.Get("/", assets.Index)
			r.Get("/firebase-messaging-sw.js", assets.ServiceWorker)
			r.Handle("/assets/*", assets.Assets(path.Join(basePath, "assets")))
		}
	})

	return r
}
