package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the followup client.
type Config struct {
	// APIURL is the backend origin. The client appends /api to it.
	APIURL string
	// DBPath is the SQLite file backing local durable storage.
	DBPath string
	// TimeoutMs bounds each API request. Zero means no timeout.
	TimeoutMs int
	// LogCalls enables API call logging.
	LogCalls bool
	// LogFile receives API call logs when set; otherwise stderr.
	LogFile string
}

// DefaultConfig returns a Config with defaults for local development.
func DefaultConfig() Config {
	dbPath := ".followup/followup.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".followup", "followup.db")
	}
	return Config{
		APIURL:    "http://localhost:8000",
		DBPath:    dbPath,
		TimeoutMs: 0,
	}
}

// Load reads an optional .env file from the working directory and then
// overlays FOLLOWUP_* environment variables on the defaults.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from defaults and the process environment only.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FOLLOWUP_API_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("FOLLOWUP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FOLLOWUP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("FOLLOWUP_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FOLLOWUP_LOG_FILE"); v != "" {
		cfg.LogFile = v
		cfg.LogCalls = true
	}

	return cfg
}

// BaseURL returns the API base including the /api prefix.
func (c Config) BaseURL() string {
	base := strings.TrimRight(c.APIURL, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}
