// Package config provides environment-based configuration for the relay.
package config

import (
	"errors"
	"os"
)

// Config holds process configuration, supplied via environment variables at
// startup. Nothing here is user-modifiable at runtime.
type Config struct {
	// Port is the HTTP listen port (PORT, default 3000).
	Port string

	// AdminSecret authorizes privileged operations (ADMIN_SECRET, required).
	AdminSecret string

	// BasePath is the route prefix (BASE_PATH, default /lab/fcm).
	BasePath string

	// PublicDir is the static web client directory (PUBLIC_DIR, default public).
	PublicDir string

	// FCMProjectID is the Firebase project ID (FCM_PROJECT_ID, optional).
	FCMProjectID string

	// FCMCredentialsFile is the service account key path
	// (FCM_CREDENTIALS_FILE, optional; application default credentials are
	// used when empty).
	FCMCredentialsFile string

	// OTLPEndpoint is the OpenTelemetry collector endpoint
	// (OTEL_EXPORTER_OTLP_ENDPOINT, default localhost:4317).
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export (OTEL_ENABLED=true).
	TelemetryEnabled bool

	// Environment is the deployment environment (APP_ENV, default development).
	Environment string
}

// ErrAdminSecretMissing is returned when ADMIN_SECRET is not set. This is
// the only fatal startup condition in the core.
var ErrAdminSecretMissing = errors.New("ADMIN_SECRET not found")

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	adminSecret := os.Getenv("ADMIN_SECRET")
	if adminSecret == "" {
		return nil, ErrAdminSecretMissing
	}

	return &Config{
		Port:               envOr("PORT", "3000"),
		AdminSecret:        adminSecret,
		BasePath:           envOr("BASE_PATH", "/lab/fcm"),
		PublicDir:          envOr("PUBLIC_DIR", "public"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),
		FCMCredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
		OTLPEndpoint:       envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:   os.Getenv("OTEL_ENABLED") == "true",
		Environment:        envOr("APP_ENV", "development"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
