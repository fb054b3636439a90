package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	env "github.com/netflix/go-env"
)

const defaultCORSOrigins = "http://localhost:3000,http://localhost:5173"

// Config holds all application configuration
type Config struct {
	// Runtime
	AppEnv   string `env:"APP_ENV,default=production"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// API Settings
	APITitle   string `env:"API_TITLE,default=Cura'an"`
	APIVersion string `env:"API_VERSION,default=1.0.0"`
	Port       string `env:"PORT,default=3000"`

	// CORS
	CORSOriginsStr string `env:"CORS_ORIGINS"`
	CORSOrigins    []string

	// Search backend that owns retrieval and generation
	BackendURL      string        `env:"BACKEND_URL,default=http://localhost:5000"`
	BackendTimeout  time.Duration `env:"BACKEND_TIMEOUT,default=30s"`
	MaxBackendBytes int64         `env:"MAX_BACKEND_BYTES,default=1048576"`

	// Search request limits
	DefaultResults int `env:"DEFAULT_RESULTS,default=3"`
	MaxResults     int `env:"MAX_RESULTS,default=20"`
	MaxIssueLength int `env:"MAX_ISSUE_LENGTH,default=2000"`

	// Requests per second allowed per client IP on the API group, 0 disables
	RateLimit float64 `env:"RATE_LIMIT,default=10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if cfg.CORSOriginsStr == "" {
		cfg.CORSOriginsStr = defaultCORSOrigins
	}
	cfg.CORSOrigins = parseCORSOrigins(cfg.CORSOriginsStr)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the app runs with development defaults
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// validateConfig rejects unusable values and clamps the rest to safe ranges
func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL, got %q", cfg.BackendURL)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = 30 * time.Second
	}
	if cfg.MaxBackendBytes <= 0 {
		cfg.MaxBackendBytes = 1 << 20
	}
	if cfg.MaxResults < 1 {
		cfg.MaxResults = 1
	}
	if cfg.DefaultResults < 1 {
		cfg.DefaultResults = 3
	}
	if cfg.DefaultResults > cfg.MaxResults {
		cfg.DefaultResults = cfg.MaxResults
	}
	if cfg.MaxIssueLength < 1 {
		cfg.MaxIssueLength = 2000
	}
	if cfg.RateLimit < 0 {
		cfg.RateLimit = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return nil
}

func parseCORSOrigins(value string) []string {
	var origins []string
	if err := json.Unmarshal([]byte(value), &origins); err == nil {
		return origins
	}
	parts := strings.Split(value, ",")
	origins = make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
