// File path: internal/provider/http.go
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nicodishanthj/locache/internal/common"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// LoadConfig assembles the provider configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL: strings.TrimSpace(os.Getenv("LOCATION_PROVIDER_URL")),
	}
	if timeout := strings.TrimSpace(os.Getenv("LOCATION_PROVIDER_TIMEOUT")); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse LOCATION_PROVIDER_TIMEOUT: %w", err)
		}
		cfg.Timeout = parsed
	}
	if retries := strings.TrimSpace(os.Getenv("LOCATION_PROVIDER_RETRIES")); retries != "" {
		value, err := strconv.Atoi(retries)
		if err != nil {
			return Config{}, fmt.Errorf("parse LOCATION_PROVIDER_RETRIES: %w", err)
		}
		cfg.MaxRetries = value
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

// HTTPProvider resolves usernames against the external location service
// over HTTP, retrying transient failures.
type HTTPProvider struct {
	client  *retryablehttp.Client
	baseURL string
}

// NewHTTP constructs an HTTPProvider from the configuration. The base URL
// is required.
func NewHTTP(cfg Config) (*HTTPProvider, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("location provider base URL required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse provider base URL: %w", err)
	}
	cfg.applyDefaults()

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = &retryLogger{logger: common.Logger()}
	return &HTTPProvider{client: client, baseURL: strings.TrimRight(base, "/")}, nil
}

type locationPayload struct {
	Username string `json:"username"`
	Location string `json:"location"`
}

// FetchLocation calls GET {base}/v1/accounts/{username}/location. A 404 or
// an empty location field means the service has nothing for the username.
func (p *HTTPProvider) FetchLocation(ctx context.Context, username string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/v1/accounts/%s/location", p.baseURL, url.PathEscape(username))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("build provider request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch location for %q: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return "", false, nil
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return "", false, fmt.Errorf("provider returned status %d for %q", resp.StatusCode, username)
	}

	var payload locationPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("decode provider response: %w", err)
	}
	location := strings.TrimSpace(payload.Location)
	if location == "" {
		return "", false, nil
	}
	return location, true, nil
}

func (p *HTTPProvider) Name() string {
	return "http"
}

// retryLogger adapts retryablehttp's leveled logging onto slog.
type retryLogger struct {
	logger *slog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error("provider: "+msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("provider: "+msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("provider: "+msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn("provider: "+msg, keysAndValues...)
}
