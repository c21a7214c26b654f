package config

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

var settingsEnv = []string{
	"HARNESS_CONFIG_DIR", "HARNESS_DEFAULTS", "HARNESS_CUSTOM", "HARNESS_ENV_PREFIX", "HARNESS_LOG_LEVEL",
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, settingsEnv...)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DefaultsResource != "test.properties" {
		t.Fatalf("expected default resource test.properties, got %s", cfg.DefaultsResource)
	}
	if cfg.CustomResource != defaultCustomResource {
		t.Fatalf("expected custom resource %s, got %s", defaultCustomResource, cfg.CustomResource)
	}
	if cfg.EnvPrefix != defaultEnvPrefix || cfg.LogLevel != defaultLogLevel || cfg.ConfigDir != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if diff := cmp.Diff(defaultSettings(), cfg); diff != "" {
		t.Fatalf("Load(nil) drifted from defaultSettings (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	unsetEnv(t, settingsEnv...)
	t.Setenv("HARNESS_CONFIG_DIR", "/etc/harness")
	t.Setenv("HARNESS_LOG_LEVEL", "debug")
	t.Setenv("HARNESS_CUSTOM", "ci.yaml")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ConfigDir != "/etc/harness" || cfg.LogLevel != "debug" || cfg.CustomResource != "ci.yaml" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoadCLIOverridesWin(t *testing.T) {
	unsetEnv(t, settingsEnv...)
	t.Setenv("HARNESS_LOG_LEVEL", "debug")
	t.Setenv("HARNESS_CONFIG_DIR", "/etc/harness")

	cfg, err := Load(&CLIOverrides{
		ConfigDir: "  ./conf ",
		LogLevel:  "warn",
		Defines:   map[string]string{"env.browser.name": "firefox"},
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ConfigDir != "./conf" {
		t.Fatalf("expected CLI config dir, got %q", cfg.ConfigDir)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected CLI log level, got %q", cfg.LogLevel)
	}
	if cfg.Defines["env.browser.name"] != "firefox" {
		t.Fatalf("expected defines to be copied, got %v", cfg.Defines)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	unsetEnv(t, settingsEnv...)

	_, err := Load(&CLIOverrides{LogLevel: "loud"})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestValidateSettingsRequiresDefaults(t *testing.T) {
	cfg := defaultSettings()
	cfg.DefaultsResource = " "

	if err := validateSettings(cfg); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}
