package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// Config holds all application configuration
type Config struct {
	Logger   LoggerConfig   `yaml:"logger"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Evidence EvidenceConfig `yaml:"evidence"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// MetricsConfig holds Prometheus configuration
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	// TextfilePath, when set, receives the registry in text exposition format after
	// each command (node_exporter textfile collector)
	TextfilePath string `yaml:"textfilePath"`
}

// EvidenceConfig holds enrichment engine settings
type EvidenceConfig struct {
	// FixedNow pins the engine clock (RFC3339 or YYYY-MM-DD) for reproducible runs
	FixedNow string `yaml:"fixedNow"`
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads defaults, then the optional YAML file, then environment overrides.
// An empty path falls back to EVIDENCE_CONFIG.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EVIDENCE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Logger: LoggerConfig{
			Level:       "info",
			Development: false,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "dispute_evidence",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Development = getEnvAsBool("LOG_DEVELOPMENT", cfg.Logger.Development)
	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Namespace = getEnv("METRICS_NAMESPACE", cfg.Metrics.Namespace)
	cfg.Metrics.TextfilePath = getEnv("METRICS_TEXTFILE", cfg.Metrics.TextfilePath)
	cfg.Evidence.FixedNow = getEnv("EVIDENCE_FIXED_NOW", cfg.Evidence.FixedNow)
}

// Validate rejects settings the CLI cannot run with
func (c *Config) Validate() error {
	c.Logger.Level = strings.ToLower(strings.TrimSpace(c.Logger.Level))
	if !validLogLevels[c.Logger.Level] {
		return domain.WrapError(domain.ErrorCodeConfigInvalid,
			fmt.Sprintf("invalid log level %q", c.Logger.Level), domain.ErrInvalidConfig).
			WithDetail("field", "logger.level")
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Namespace) == "" {
		return domain.WrapError(domain.ErrorCodeConfigInvalid,
			"metrics namespace is required when metrics are enabled", domain.ErrInvalidConfig).
			WithDetail("field", "metrics.namespace")
	}
	if _, err := c.Evidence.Clock(); err != nil {
		return err
	}
	return nil
}

// Clock returns the engine clock: pinned when FixedNow is set, the UTC wall clock otherwise
func (c EvidenceConfig) Clock() (timeutil.Clock, error) {
	if strings.TrimSpace(c.FixedNow) == "" {
		return timeutil.Now, nil
	}
	t, ok := timeutil.ParseLenient(c.FixedNow, time.Time{})
	if !ok {
		return nil, domain.WrapError(domain.ErrorCodeConfigInvalid,
			fmt.Sprintf("invalid fixed now %q", c.FixedNow), domain.ErrInvalidConfig).
			WithDetail("field", "evidence.fixedNow")
	}
	return timeutil.Fixed(t), nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
