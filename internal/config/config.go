package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Upstream core API (owner of loan and deposit records)
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Background Workers
	WorkerCount int

	// Screen sessions
	ScreenIdleTimeout  time.Duration
	UpstreamProbeEvery time.Duration

	// Placeholder figures for the "Active Users" pie
	UserDistributionTotal  int
	UserDistributionActive int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		UpstreamBaseURL:        strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		UpstreamTimeout:        time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		WorkerCount:            getEnvAsInt("WORKER_COUNT", 4),
		ScreenIdleTimeout:      time.Duration(getEnvAsInt("SCREEN_IDLE_MINUTES", 30)) * time.Minute,
		UpstreamProbeEvery:     time.Duration(getEnvAsInt("UPSTREAM_PROBE_MINUTES", 5)) * time.Minute,
		UserDistributionTotal:  getEnvAsInt("USER_DIST_TOTAL", 821),
		UserDistributionActive: getEnvAsInt("USER_DIST_ACTIVE", 384280),
		AllowedOrigins:         getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:              getEnv("SENTRY_DSN", ""),
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if u, err := url.Parse(cfg.UpstreamBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL must be an absolute URL, got %q", cfg.UpstreamBaseURL)
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
