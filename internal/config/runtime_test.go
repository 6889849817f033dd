// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

type discardEnvironment struct{}

func (discardEnvironment) Setenv(string, string) error { return nil }

func TestServer(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	t.Run("defaults", func(t *testing.T) {
		got := Server(settings.NewValues(settings.EnvMap{}, reg))
		want := ServerConfig{Host: "0.0.0.0", Port: 8080, CORSOrigins: []string{"*"}, TestRateLimit: 30}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Server() mismatch (-want +got):\n%s", diff)
		}
		if got.Addr() != "0.0.0.0:8080" {
			t.Errorf("Addr() = %q", got.Addr())
		}
	})

	t.Run("overrides", func(t *testing.T) {
		got := Server(settings.NewValues(settings.EnvMap{
			"HOST":           settings.Str("::1"),
			"PORT":           settings.Str("9000"),
			"CORS_ORIGINS":   settings.Str("https://a.example, https://b.example"),
			"API_RATE_LIMIT": settings.Str("not-a-number"),
		}, reg))
		want := ServerConfig{
			Host:          "::1",
			Port:          9000,
			CORSOrigins:   []string{"https://a.example", "https://b.example"},
			TestRateLimit: 30,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Server() mismatch (-want +got):\n%s", diff)
		}
		if got.Addr() != "[::1]:9000" {
			t.Errorf("Addr() = %q", got.Addr())
		}
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	cfg := Logging(settings.NewValues(settings.EnvMap{"LOG_FORMAT": settings.Str("console")}, NewRegistry()))
	if cfg.Level != "info" || cfg.Format != "console" {
		t.Errorf("Logging() = level %q format %q", cfg.Level, cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Logging() should keep timestamps on")
	}
}

func TestFeatureEnabled(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	flag := FeatureFlag{Name: "TELEMETRY_STREAM", Default: false}

	if FeatureEnabled(settings.NewValues(settings.EnvMap{}, reg), flag) {
		t.Error("flag should default to off")
	}
	on := settings.EnvMap{flag.SettingKey(): settings.Str("true")}
	if !FeatureEnabled(settings.NewValues(on, reg), flag) {
		t.Error("flag should be on")
	}
	garbage := settings.EnvMap{flag.SettingKey(): settings.Str("maybe")}
	if FeatureEnabled(settings.NewValues(garbage, reg), flag) {
		t.Error("unparseable flag should fall back to its default")
	}
}

func TestApplyLive(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	path := filepath.Join(t.TempDir(), "settings.json")
	store := settings.NewStore(NewRegistry(),
		settings.WithFileStore(settings.NewJSONFileStore(func() string { return path })),
		settings.WithEnvironment(discardEnvironment{}),
		settings.WithFlags(settings.Flags{DotenvDisabled: true}),
	)
	st, err := store.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	ApplyLive(st)
	if got := zerolog.GlobalLevel(); got != zerolog.WarnLevel {
		t.Errorf("global level = %s, want warn", got)
	}
}
