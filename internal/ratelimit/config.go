// File path: internal/ratelimit/config.go
package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWindow        = 60 * time.Second
	DefaultLimit         = 5
	DefaultRequestWindow = 600 * time.Second
)

type Config struct {
	Window        time.Duration
	Limit         int
	RequestWindow time.Duration
}

// Merge overlays any populated fields from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if override.Window > 0 {
		result.Window = override.Window
	}
	if override.Limit > 0 {
		result.Limit = override.Limit
	}
	if override.RequestWindow > 0 {
		result.RequestWindow = override.RequestWindow
	}
	return result
}

// LoadConfig assembles the limiter configuration from the environment and
// applies defaults for anything left unset.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if window := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW")); window != "" {
		parsed, err := time.ParseDuration(window)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATE_LIMIT_WINDOW: %w", err)
		}
		cfg.Window = parsed
	}
	if limit := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX")); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATE_LIMIT_MAX: %w", err)
		}
		if value > 0 {
			cfg.Limit = value
		}
	}
	if window := strings.TrimSpace(os.Getenv("REQUEST_COUNT_WINDOW")); window != "" {
		parsed, err := time.ParseDuration(window)
		if err != nil {
			return Config{}, fmt.Errorf("parse REQUEST_COUNT_WINDOW: %w", err)
		}
		cfg.RequestWindow = parsed
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.RequestWindow <= 0 {
		c.RequestWindow = DefaultRequestWindow
	}
}
