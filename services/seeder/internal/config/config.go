package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	FilterNone     = "none"
	FilterTVSeries = "tv-series"
)

type Config struct {
	DatabaseURL  string
	Elevated     bool // true when the seeding DSN was used
	JikanBaseURL string
	Filter       string
	PageDelay    time.Duration
	NATSURL      string // optional, analytics disabled when empty
	LogLevel     string
}

// Load reads the seeder configuration from the environment. The elevated
// SEED_DATABASE_URL is preferred; DATABASE_URL is the restricted fallback.
// Missing configuration is reported before any network activity.
func Load() (Config, error) {
	cfg := Config{
		JikanBaseURL: strings.TrimSpace(os.Getenv("JIKAN_BASE_URL")),
		LogLevel:     strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		Filter:       strings.TrimSpace(os.Getenv("SEED_FILTER")),
		NATSURL:      strings.TrimSpace(os.Getenv("NATS_URL")),
		PageDelay:    time.Second,
	}

	if dsn := strings.TrimSpace(os.Getenv("SEED_DATABASE_URL")); dsn != "" {
		cfg.DatabaseURL = dsn
		cfg.Elevated = true
	} else if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		cfg.DatabaseURL = dsn
	} else {
		return Config{}, errors.New("missing database configuration: set SEED_DATABASE_URL (preferred, elevated privileges) or DATABASE_URL")
	}

	switch cfg.Filter {
	case "":
		cfg.Filter = FilterNone
	case FilterNone, FilterTVSeries:
	default:
		return Config{}, fmt.Errorf("SEED_FILTER must be %q or %q, got %q", FilterNone, FilterTVSeries, cfg.Filter)
	}

	if v := strings.TrimSpace(os.Getenv("SEED_PAGE_DELAY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SEED_PAGE_DELAY must be a positive duration, got %q", v)
		}
		cfg.PageDelay = d
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
