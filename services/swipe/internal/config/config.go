package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	NATSURL        string // optional, analytics disabled when empty
	LogLevel       string
}

// Load reads the API configuration from the environment. All missing
// required variables are reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:       strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		NATSURL:        strings.TrimSpace(os.Getenv("NATS_URL")),
		LogLevel:       strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		AccessTokenTTL: 24 * time.Hour,
	}
	if secret := strings.TrimSpace(os.Getenv("JWT_SECRET")); secret != "" {
		cfg.JWTSecret = []byte(secret)
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(cfg.JWTSecret) == 0 {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if v := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL must be a positive duration, got %q", v)
		}
		cfg.AccessTokenTTL = d
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
