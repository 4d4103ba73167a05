package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the docproc client surfaces.
type Config struct {
	Web     WebConfig
	Backend BackendConfig
	Storage StorageConfig
	Poll    PollConfig
}

type WebConfig struct {
	Port int
	Env  string
}

type BackendConfig struct {
	// ProductionURL is the backend every deployed hostname is pinned to.
	ProductionURL string
	// LocalURL is the default backend for local development.
	LocalURL string
	// OverrideURL is an optional operator-supplied base URL. See ResolveBaseURL
	// for the precedence rules it participates in.
	OverrideURL string
	Timeout     time.Duration
}

type StorageConfig struct {
	// URL and Key identify the object-storage service holding uploaded files.
	// Both are required when Enabled; neither has a source-level fallback.
	Enabled bool
	URL     string
	Key     string
	Bucket  string
}

type PollConfig struct {
	Interval time.Duration
}

// Load reads configuration from the environment (and an optional .env file)
// and returns a validated Config. Missing required values are a hard error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Web: WebConfig{
			Port: envInt("DOCPROC_PORT", 3000),
			Env:  envString("DOCPROC_ENV", "development"),
		},
		Backend: BackendConfig{
			ProductionURL: os.Getenv("DOCPROC_BACKEND_URL"),
			LocalURL:      envString("DOCPROC_BACKEND_LOCAL_URL", "http://localhost:3001"),
			OverrideURL:   os.Getenv("DOCPROC_BACKEND_OVERRIDE_URL"),
			Timeout:       envDuration("DOCPROC_BACKEND_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Enabled: envBool("DOCPROC_STORAGE_ENABLED", false),
			URL:     os.Getenv("DOCPROC_STORAGE_URL"),
			Key:     os.Getenv("DOCPROC_STORAGE_KEY"),
			Bucket:  envString("DOCPROC_STORAGE_BUCKET", "my-files"),
		},
		Poll: PollConfig{
			Interval: envDuration("DOCPROC_POLL_INTERVAL", 3*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Web.Env != "development" && c.Backend.ProductionURL == "" {
		return fmt.Errorf("DOCPROC_BACKEND_URL is required outside development")
	}
	for name, u := range map[string]string{
		"DOCPROC_BACKEND_URL":          c.Backend.ProductionURL,
		"DOCPROC_BACKEND_LOCAL_URL":    c.Backend.LocalURL,
		"DOCPROC_BACKEND_OVERRIDE_URL": c.Backend.OverrideURL,
	} {
		if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%s must start with http:// or https://, got %q", name, u)
		}
	}

	if c.Storage.Enabled {
		if c.Storage.URL == "" {
			return fmt.Errorf("DOCPROC_STORAGE_URL is required when storage is enabled")
		}
		if c.Storage.Key == "" {
			return fmt.Errorf("DOCPROC_STORAGE_KEY is required when storage is enabled")
		}
	}

	if c.Poll.Interval <= 0 {
		return fmt.Errorf("DOCPROC_POLL_INTERVAL must be positive, got %s", c.Poll.Interval)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
