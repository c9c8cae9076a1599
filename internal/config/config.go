// Package config provides configuration management for the dashboard and the holdings service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/holdings-dashboard/internal/utils"
)

// Dashboard holds the terminal dashboard configuration
type Dashboard struct {
	APIURL          string
	RefreshInterval time.Duration // Holdings poll period
	ToastDuration   time.Duration // How long a notification stays visible
	HTTPTimeout     time.Duration // Zero means requests are never timed out
	DiscardStale    bool          // Drop holdings responses older than the last one rendered
	LogLevel        string
	LogFile         string
}

// Server holds the holdings service configuration
type Server struct {
	DataDir           string // Directory holding dashboard.db (always absolute)
	Port              int
	PriceCacheTTL     time.Duration
	PriceSyncSchedule string // cron spec for the price sync job
	CORSOrigins       []string
	DevMode           bool
	LogLevel          string
}

// LoadDashboard reads the dashboard configuration from environment variables
func LoadDashboard() (*Dashboard, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Dashboard{
		APIURL:          strings.TrimRight(getEnv("DASHBOARD_API_URL", "http://localhost:5000"), "/"),
		RefreshInterval: getEnvAsDuration("DASHBOARD_REFRESH_INTERVAL", 30*time.Second),
		ToastDuration:   getEnvAsDuration("DASHBOARD_TOAST_DURATION", 3*time.Second),
		HTTPTimeout:     getEnvAsDuration("DASHBOARD_HTTP_TIMEOUT", 0),
		DiscardStale:    getEnvAsBool("DASHBOARD_DISCARD_STALE", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("DASHBOARD_LOG_FILE", "dashboard.log"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the dashboard can poll with this configuration
func (c *Dashboard) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("DASHBOARD_API_URL must not be empty")
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive, got %s", c.ToastDuration)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP timeout must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

// LoadServer reads the service configuration from environment variables
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Server{
		DataDir:           absDataDir,
		Port:              getEnvAsInt("PORT", 5000),
		PriceCacheTTL:     getEnvAsDuration("PRICE_CACHE_TTL", time.Minute),
		PriceSyncSchedule: getEnv("PRICE_SYNC_SCHEDULE", "@every 1m"),
		CORSOrigins:       utils.ParseCSV(getEnv("CORS_ORIGINS", "*")),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the service configuration
func (c *Server) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PriceCacheTTL < 0 {
		return fmt.Errorf("price cache TTL must not be negative, got %s", c.PriceCacheTTL)
	}
	return nil
}

// DatabasePath returns the SQLite file holding holdings, watchlist and settings
func (c *Server) DatabasePath() string {
	return filepath.Join(c.DataDir, "dashboard.db")
}

// CachePath returns the SQLite file holding cached quotes
func (c *Server) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("30s") and bare integers as seconds ("30").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
