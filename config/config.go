package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/snake-scoreboard/internal/observability"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendJSON     = "json"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Storage       StorageConfig       `yaml:"storage"`
	Scores        ScoresConfig        `yaml:"scores"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the listener and throttling settings.
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RequestsPerSecond and Burst configure the coarse per-IP throttle on /api.
	// A zero RequestsPerSecond disables it.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// StorageConfig selects and configures the score storage backend.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
	DSN        string `yaml:"dsn"`
	JSONPath   string `yaml:"json_path"`
	MaxStore   int    `yaml:"max_store"`
}

// ScoresConfig holds the score API policy.
type ScoresConfig struct {
	DefaultLimit int             `yaml:"default_limit"`
	MaxLimit     int             `yaml:"max_limit"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures the per-client submission window.
type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Window       time.Duration `yaml:"window"`
	MaxPerWindow int           `yaml:"max_per_window"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// Default returns the configuration used when no file or env overrides are present.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Host:              "0.0.0.0",
			Port:              5000,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			SQLitePath: "scores.db",
			JSONPath:   "scores.json",
			MaxStore:   1000,
		},
		Scores: ScoresConfig{
			DefaultLimit: 10,
			MaxLimit:     1000,
			RateLimit: RateLimitConfig{
				Enabled:      true,
				Window:       60 * time.Second,
				MaxPerWindow: 20,
			},
		},
		Observability: ObservabilityConfig{
			Environment:    "production",
			LogLevel:       "info",
			MetricsEnabled: true,
		},
	}
}

// LoadConfig loads the configuration from a YAML file, then applies env overrides.
// A missing file is not an error; defaults plus environment are used instead.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with any environment variables that are set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.HTTP.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("JSON_PATH"); v != "" {
		cfg.Storage.JSONPath = v
	}
	if v := os.Getenv("MAX_STORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_STORE value: %v", err)
		}
		cfg.Storage.MaxStore = n
	}
	if v := os.Getenv("SCORES_DEFAULT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SCORES_DEFAULT_LIMIT value: %v", err)
		}
		cfg.Scores.DefaultLimit = n
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.Scores.RateLimit.Enabled = v == "true"
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path must be set for the sqlite backend")
		}
	case BackendPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn (or DATABASE_URL) must be set for the postgres backend")
		}
	case BackendJSON:
		if c.Storage.JSONPath == "" {
			return errors.New("storage.json_path must be set for the json backend")
		}
		if c.Storage.MaxStore <= 0 {
			return fmt.Errorf("storage.max_store must be positive, got %d", c.Storage.MaxStore)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Scores.DefaultLimit <= 0 {
		return fmt.Errorf("scores.default_limit must be positive, got %d", c.Scores.DefaultLimit)
	}
	if c.Scores.MaxLimit < c.Scores.DefaultLimit {
		return fmt.Errorf("scores.max_limit (%d) must be >= scores.default_limit (%d)", c.Scores.MaxLimit, c.Scores.DefaultLimit)
	}
	if c.Scores.RateLimit.Enabled {
		if c.Scores.RateLimit.Window <= 0 || c.Scores.RateLimit.MaxPerWindow <= 0 {
			return errors.New("scores.rate_limit window and max_per_window must be positive when enabled")
		}
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:    "snake-scoreboard",
		Environment:    appCfg.Observability.Environment,
		Version:        "1.0.0", // Could inject via `ldflags`
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsEnabled: appCfg.Observability.MetricsEnabled,
	}
}
