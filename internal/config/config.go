// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort        = "8000"
	defaultHost        = "0.0.0.0"
	defaultProvider    = "openai"
	defaultModel       = "gpt-4o"
	defaultMaxFileSize = 10 * 1024 * 1024

	// Common .env templates ship this literal; treat it as unset.
	placeholderKey = "your_api_key_here"
)

// Config represents runtime configuration for the service. Initialized once
// at process start and never mutated afterwards.
type Config struct {
	// Completion service.
	Provider string
	APIKey   string
	BaseURL  string
	Model    string

	// Server.
	Host        string
	Port        string
	Environment string

	// Mock mode toggle (mock also activates when no credential is set).
	UseMockAI bool

	// Upload limits and CORS.
	AllowedOrigins    []string
	MaxFileSize       int64
	AllowedExtensions []string
}

// FromEnv reads the configuration from environment variables, applying
// defaults for anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Provider:          getenv("AI_PROVIDER", defaultProvider),
		APIKey:            os.Getenv("AI_API_KEY"),
		BaseURL:           os.Getenv("AI_BASE_URL"),
		Model:             getenv("AI_MODEL", defaultModel),
		Host:              getenv("HOST", defaultHost),
		Port:              getenv("PORT", defaultPort),
		Environment:       getenv("ENVIRONMENT", "development"),
		UseMockAI:         strings.EqualFold(os.Getenv("USE_MOCK_AI"), "true"),
		MaxFileSize:       defaultMaxFileSize,
		AllowedExtensions: []string{".pdf"},
	}

	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_FILE_SIZE %q", v)
		}
		cfg.MaxFileSize = size
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:3000",
		}
	}

	return cfg, nil
}

// HasCredential reports whether a usable completion-service credential is
// configured.
func (c *Config) HasCredential() bool {
	return c.APIKey != "" && c.APIKey != placeholderKey
}

// MockMode reports whether completions must be mocked: either toggled
// explicitly or forced by a missing credential.
func (c *Config) MockMode() bool {
	return c.UseMockAI || !c.HasCredential()
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the host:port bind address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AllowedExtension reports whether the filename carries a permitted upload
// extension.
func (c *Config) AllowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range c.AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
