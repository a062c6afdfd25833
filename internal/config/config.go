// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PlannerURL is the base URL of the OpenAI-compatible chat completions
	// endpoint used for itinerary generation. Required.
	PlannerURL string

	// PlannerAPIKey is the bearer token for the planner endpoint. Optional;
	// local model servers typically run without authentication.
	PlannerAPIKey string

	// PlannerModel names the model requested from the planner endpoint.
	// Defaults to "gpt-4o-mini".
	PlannerModel string

	// PlannerTimeout bounds a single planner call. Defaults to 60s.
	// Set PLANNER_TIMEOUT to a Go duration string (e.g. "90s") to override.
	PlannerTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PlannerAPIKey: os.Getenv("PLANNER_API_KEY"),
		PlannerModel:  getEnv("PLANNER_MODEL", "gpt-4o-mini"),
	}

	timeout, err := time.ParseDuration(getEnv("PLANNER_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PLANNER_TIMEOUT: %w", err)
	}
	cfg.PlannerTimeout = timeout

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.PlannerURL = os.Getenv("PLANNER_URL")
	if cfg.PlannerURL == "" {
		missing = append(missing, "PLANNER_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
