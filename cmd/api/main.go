// Package main provides the entrypoint for the push relay API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/bouzuya/pushrelay/internal/admin"
	"github.com/bouzuya/pushrelay/internal/api"
	"github.com/bouzuya/pushrelay/internal/api/middleware"
	"github.com/bouzuya/pushrelay/internal/config"
	"github.com/bouzuya/pushrelay/internal/notification"
	"github.com/bouzuya/pushrelay/internal/push"
	"github.com/bouzuya/pushrelay/internal/push/fcm"
	"github.com/bouzuya/pushrelay/internal/relay"
	"github.com/bouzuya/pushrelay/internal/telemetry"
	"github.com/bouzuya/pushrelay/internal/token"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "pushrelay-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting push relay API")

	// .env is a local-development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize HTTP metrics")
	}
	dispatchMetrics, err := notification.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dispatch metrics")
	}

	// Initialize the push gateway
	fcmClient, err := fcm.NewClient(ctx, fcm.ClientConfig{
		ProjectID:       cfg.FCMProjectID,
		CredentialsFile: cfg.FCMCredentialsFile,
		Logger:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize FCM client")
	}
	gateway := push.NewBreakerGateway(fcmClient, push.BreakerConfig{
		Name: "fcm",
		OnStateChange: func(name string, from, to push.BreakerState) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("push gateway circuit breaker state changed")
		},
	})
	log.Info().Msg("push gateway initialized")

	// Initialize the token registry
	tokenService := token.NewService(token.NewInMemoryRepository())
	log.Info().Msg("token registry initialized")

	// Initialize the dispatcher and relay service
	dispatcher := notification.NewDispatcher(notification.DispatcherConfig{
		Registry: tokenService,
		Gateway:  gateway,
		Logger:   log,
		Metrics:  dispatchMetrics,
	})
	relayService := relay.NewService(relay.ServiceConfig{
		Tokens:     tokenService,
		Gate:       admin.NewGate(cfg.AdminSecret),
		Dispatcher: dispatcher,
		Logger:     log,
	})
	log.Info().Msg("relay service initialized")

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		Metrics:      httpMetrics,
		RelayService: relayService,
		BasePath:     cfg.BasePath,
		PublicDir:    cfg.PublicDir,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("base_path", cfg.BasePath).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
