// File path: internal/lookup/config.go
package lookup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTTLDays         = 7
	defaultProviderTimeout = 10 * time.Second
)

type Config struct {
	// TTL is how long a cached row stays fresh.
	TTL time.Duration
	// ProviderTimeout bounds each synchronous or background provider call.
	ProviderTimeout time.Duration
	// Now supplies timestamps; tests substitute a synthetic clock.
	Now func() time.Time
}

// Merge overlays any populated fields from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if override.TTL > 0 {
		result.TTL = override.TTL
	}
	if override.ProviderTimeout > 0 {
		result.ProviderTimeout = override.ProviderTimeout
	}
	if override.Now != nil {
		result.Now = override.Now
	}
	return result
}

// LoadConfig assembles the lookup configuration from the environment and
// applies defaults for anything left unset.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if days := strings.TrimSpace(os.Getenv("CACHE_TTL_DAYS")); days != "" {
		value, err := strconv.Atoi(days)
		if err != nil {
			return Config{}, fmt.Errorf("parse CACHE_TTL_DAYS: %w", err)
		}
		if value > 0 {
			cfg.TTL = time.Duration(value) * 24 * time.Hour
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TTL <= 0 {
		c.TTL = defaultTTLDays * 24 * time.Hour
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = defaultProviderTimeout
	}
	if c.Now == nil {
		c.Now = func() time.Time { return time.Now().UTC() }
	}
}
