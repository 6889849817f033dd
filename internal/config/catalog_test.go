// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package config

import (
	"slices"
	"testing"

	"github.com/tomtom215/nmsconsole/internal/settings/testers"
	"github.com/tomtom215/nmsconsole/internal/validation"
)

func TestCatalog_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, def := range Catalog {
		if seen[def.Key] {
			t.Errorf("duplicate catalog key %s", def.Key)
		}
		seen[def.Key] = true
	}

	reg := NewRegistry()
	if got, want := reg.Len(), len(Catalog)+len(FeatureFlags); got != want {
		t.Errorf("registry has %d settings, want %d", got, want)
	}
}

func TestCatalog_DefinitionsAreWellFormed(t *testing.T) {
	t.Parallel()

	names := testers.Default().Names()
	for _, def := range NewRegistry().Definitions() {
		if !def.DataType.Valid() {
			t.Errorf("%s: invalid data type %q", def.Key, def.DataType)
		}
		for _, v := range def.Validations {
			if !validation.KnownValidator(v) {
				t.Errorf("%s: unknown validator %q", def.Key, v)
			}
		}
		if def.Tester != "" && !slices.Contains(names, def.Tester) {
			t.Errorf("%s: tester %q is not registered", def.Key, def.Tester)
		}
		if def.DefaultValue != nil {
			if err := validation.ValidateSetting(def, *def.DefaultValue); err != nil {
				t.Errorf("%s: default %q fails validation: %v", def.Key, *def.DefaultValue, err)
			}
		}
	}
}

func TestFeatureFlagDefinitions(t *testing.T) {
	t.Parallel()

	defs := FeatureFlagDefinitions([]FeatureFlag{
		{Name: "DASHBOARDS", Default: true},
		{Name: "TELEMETRY_STREAM", Default: false},
	})
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}

	if defs[0].Key != "NMS_DASHBOARDS_ENABLED" || *defs[0].DefaultValue != "true" {
		t.Errorf("unexpected definition %+v", defs[0])
	}
	if defs[1].Key != "NMS_TELEMETRY_STREAM_ENABLED" || *defs[1].DefaultValue != "false" {
		t.Errorf("unexpected definition %+v", defs[1])
	}
	for _, d := range defs {
		if d.DataType != "BOOL" {
			t.Errorf("%s: data type = %s, want BOOL", d.Key, d.DataType)
		}
		if d.NeedsRestart() {
			t.Errorf("%s: feature flags should not require a restart", d.Key)
		}
	}
}

func TestCatalog_RestartRequirements(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if !reg.RequiresRestart([]string{"PORT"}) {
		t.Error("PORT should require a restart")
	}
	if reg.RequiresRestart([]string{"LOG_LEVEL", "TILE_SERVER_URL", "NMS_DASHBOARDS_ENABLED"}) {
		t.Error("live settings should not require a restart")
	}
}
