package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/resources"
)

const (
	defaultCustomResource = "custom.properties"
	defaultEnvPrefix      = "HARNESS_"
	defaultLogLevel       = "info"
)

// Settings controls how the property registry is bootstrapped.
// Precedence: CLI flags > Environment variables > Defaults
// Defaults live in defaultSettings only; unset variables keep them.
type Settings struct {
	ConfigDir        string `env:"HARNESS_CONFIG_DIR"`
	DefaultsResource string `env:"HARNESS_DEFAULTS"`
	CustomResource   string `env:"HARNESS_CUSTOM"`
	EnvPrefix        string `env:"HARNESS_ENV_PREFIX"`
	LogLevel         string `env:"HARNESS_LOG_LEVEL"`

	// Defines are -D key=value pairs. They form the highest-precedence
	// property source.
	Defines map[string]string `env:"-"`
}

// CLIOverrides holds command-line flag overrides. Empty values are ignored.
type CLIOverrides struct {
	ConfigDir        string
	DefaultsResource string
	CustomResource   string
	LogLevel         string
	Defines          map[string]string
}

// Load builds bootstrap settings from environment variables and CLI flags with
// precedence: CLI flags > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Settings, error) {
	cfg := defaultSettings()

	if err := env.Parse(&cfg); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateSettings(cfg); err != nil {
		return Settings{}, err
	}

	return cfg, nil
}

// defaultSettings returns Settings with default values.
func defaultSettings() Settings {
	return Settings{
		DefaultsResource: resources.DefaultsName,
		CustomResource:   defaultCustomResource,
		EnvPrefix:        defaultEnvPrefix,
		LogLevel:         defaultLogLevel,
		Defines:          map[string]string{},
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Settings, overrides *CLIOverrides) {
	if dir := strings.TrimSpace(overrides.ConfigDir); dir != "" {
		cfg.ConfigDir = dir
	}

	if name := strings.TrimSpace(overrides.DefaultsResource); name != "" {
		cfg.DefaultsResource = name
	}

	if name := strings.TrimSpace(overrides.CustomResource); name != "" {
		cfg.CustomResource = name
	}

	if level := strings.TrimSpace(overrides.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	if len(overrides.Defines) > 0 {
		if cfg.Defines == nil {
			cfg.Defines = make(map[string]string, len(overrides.Defines))
		}
		maps.Copy(cfg.Defines, overrides.Defines)
	}
}

// validateSettings validates the final settings.
func validateSettings(cfg Settings) error {
	if strings.TrimSpace(cfg.DefaultsResource) == "" {
		return fmt.Errorf("%w: defaults resource must be named", ErrInvalidSettings)
	}
	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %w", ErrInvalidSettings, cfg.LogLevel, err)
	}
	return nil
}
