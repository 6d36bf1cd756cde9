package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	DatabaseURL string
	ListenAddr  string
	// HorizonDays bounds forward occurrence materialization.
	HorizonDays int
	// ExtendAt is the HH:MM local time of the daily series re-extension job.
	// Empty disables the job.
	ExtendAt string
	// ExtendInterval, when positive, runs the re-extension every interval
	// instead of daily at ExtendAt.
	ExtendInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:     strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		HorizonDays:    parsePositiveInt(strings.TrimSpace(os.Getenv("HORIZON_DAYS"))),
		ExtendAt:       strings.TrimSpace(os.Getenv("EXTEND_AT")),
		ExtendInterval: parseInterval(strings.TrimSpace(os.Getenv("EXTEND_INTERVAL_HOURS"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "allme.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.HorizonDays == 0 {
		cfg.HorizonDays = 90
	}
	if _, set := os.LookupEnv("EXTEND_AT"); !set {
		// setting EXTEND_AT to the empty string disables the job
		cfg.ExtendAt = "03:00"
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parsePositiveInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
