// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRegistry_DuplicateLaterWins(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(
		SettingDefinition{Key: "PORT", DataType: TypeInt, DefaultValue: Str("80")},
		SettingDefinition{Key: "LOG_LEVEL", DataType: TypeString},
		SettingDefinition{Key: "PORT", DataType: TypeInt, DefaultValue: Str("8080")},
	)

	if diff := cmp.Diff([]string{"PORT", "LOG_LEVEL"}, reg.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if def, _ := reg.Default("PORT"); def != "8080" {
		t.Errorf("Default(PORT) = %q, want 8080 from the later definition", def)
	}
}

func TestNewRegistry_SkipsInvalidKeys(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(
		SettingDefinition{Key: "", DataType: TypeString},
		SettingDefinition{Key: "HAS SPACE", DataType: TypeString},
		SettingDefinition{Key: "A=B", DataType: TypeString},
		SettingDefinition{Key: "9LIVES", DataType: TypeString},
		SettingDefinition{Key: "OK_KEY", DataType: TypeString},
	)

	if diff := cmp.Diff([]string{"OK_KEY"}, reg.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry_UnknownDataTypeFallsBackToString(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(SettingDefinition{Key: "X", DataType: "FLOAT"})
	def, ok := reg.Lookup("X")
	if !ok {
		t.Fatal("X not registered")
	}
	if def.DataType != TypeString {
		t.Errorf("DataType = %q, want STRING", def.DataType)
	}
}

func TestSettingDefinition_NeedsRestart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *bool
		want bool
	}{
		{"unset defaults to true", nil, true},
		{"explicit true", boolPtr(true), true},
		{"explicit false", NoRestart(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := SettingDefinition{Key: "K", RequiresRestart: tt.in}
			if got := def.NeedsRestart(); got != tt.want {
				t.Errorf("NeedsRestart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_RequiresRestart(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(
		SettingDefinition{Key: "PORT", DataType: TypeInt},
		SettingDefinition{Key: "LOG_LEVEL", DataType: TypeString, RequiresRestart: NoRestart()},
		SettingDefinition{Key: "MAP_DEFAULT_ZOOM", DataType: TypeInt, RequiresRestart: NoRestart()},
	)

	tests := []struct {
		keys []string
		want bool
	}{
		{nil, false},
		{[]string{"LOG_LEVEL"}, false},
		{[]string{"LOG_LEVEL", "MAP_DEFAULT_ZOOM"}, false},
		{[]string{"PORT"}, true},
		{[]string{"LOG_LEVEL", "PORT"}, true},
		{[]string{"UNREGISTERED"}, false},
	}

	for _, tt := range tests {
		if got := reg.RequiresRestart(tt.keys); got != tt.want {
			t.Errorf("RequiresRestart(%v) = %v, want %v", tt.keys, got, tt.want)
		}
	}
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(SettingDefinition{
		Key:          "PORT",
		DataType:     TypeInt,
		DefaultValue: Str("80"),
		Validations:  []string{"port"},
	})

	def, _ := reg.Lookup("PORT")
	*def.DefaultValue = "1"
	def.Validations[0] = "changed"

	again, _ := reg.Lookup("PORT")
	if *again.DefaultValue != "80" {
		t.Errorf("registry default mutated through Lookup: %q", *again.DefaultValue)
	}
	if again.Validations[0] != "port" {
		t.Errorf("registry validations mutated through Lookup: %v", again.Validations)
	}
}

func TestRegistry_Filter(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(SettingDefinition{Key: "PORT", DataType: TypeInt})

	kept, dropped := reg.Filter(EnvMap{"PORT": Str("1"), "HOME": Str("/root"), "PATH": nil})

	if diff := cmp.Diff([]string{"PORT"}, kept.Keys()); diff != "" {
		t.Errorf("kept keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"HOME", "PATH"}, dropped); diff != "" {
		t.Errorf("dropped keys mismatch (-want +got):\n%s", diff)
	}
}
