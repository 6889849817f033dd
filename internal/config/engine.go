// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

// EngineConfig holds the bootstrap switches of the settings engine. These
// are read from the process environment only, before any settings source,
// because they decide which sources are read.
//
// The settings file location (NMS_SETTINGS_FILE) is not part of it: it
// is resolved on every read and write, see settings.PathFromEnv.
type EngineConfig struct {
	// DisableEnvFile skips the dotenv file when non-empty.
	DisableEnvFile string `koanf:"disable_env_file"`

	// EnvFile is the dotenv file location.
	EnvFile string `koanf:"env_file"`

	// SettingsEnabled gates the settings file. Empty or "false" disables it.
	SettingsEnabled string `koanf:"settings_enabled"`

	// DisableSettingsFileDiff persists full submissions when non-empty.
	DisableSettingsFileDiff string `koanf:"disable_settings_file_diff"`

	// SettingsKey, when set, encrypts secret settings in the settings file.
	SettingsKey string `koanf:"settings_key"`

	// RestartDelay is the restart coordinator's absorb window.
	RestartDelay time.Duration `koanf:"restart_delay"`

	// TestTimeout bounds each connectivity tester run.
	TestTimeout time.Duration `koanf:"test_timeout"`

	// ShutdownTimeout bounds the graceful shutdown of supervised services.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// engineEnvKeys maps the recognised environment variables to koanf paths.
// Anything else in the environment is ignored.
var engineEnvKeys = map[string]string{
	"DISABLE_ENV_FILE":           "disable_env_file",
	"NMS_ENV_FILE":               "env_file",
	"NMS_SETTINGS_ENABLED":       "settings_enabled",
	"DISABLE_SETTINGS_FILE_DIFF": "disable_settings_file_diff",
	"NMS_SETTINGS_KEY":           "settings_key",
	"NMS_RESTART_DELAY":          "restart_delay",
	"NMS_TEST_TIMEOUT":           "test_timeout",
	"NMS_SHUTDOWN_TIMEOUT":       "shutdown_timeout",
}

func defaultEngineConfig() EngineConfig {
	return EngineConfig{
		EnvFile:         ".env",
		RestartDelay:    settings.DefaultRestartDelay,
		TestTimeout:     settings.DefaultTestTimeout,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadEngineConfig loads the engine switches from defaults and the
// environment.
func LoadEngineConfig() (*EngineConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultEngineConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	envProvider := env.Provider("", ".", func(key string) string {
		return engineEnvKeys[key]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &EngineConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the duration switches.
func (c *EngineConfig) Validate() error {
	if c.RestartDelay <= 0 {
		return fmt.Errorf("NMS_RESTART_DELAY must be positive, got %s", c.RestartDelay)
	}
	if c.TestTimeout <= 0 {
		return fmt.Errorf("NMS_TEST_TIMEOUT must be positive, got %s", c.TestTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("NMS_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Flags converts the switches into settings.Flags.
func (c *EngineConfig) Flags() settings.Flags {
	return settings.Flags{
		DotenvDisabled:      c.DisableEnvFile != "",
		DotenvPath:          c.EnvFile,
		SettingsFileEnabled: c.SettingsEnabled != "" && c.SettingsEnabled != "false",
		DiffDisabled:        c.DisableSettingsFileDiff != "",
	}
}
