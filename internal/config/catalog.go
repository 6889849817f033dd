// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package config

import (
	"strconv"

	"github.com/tomtom215/nmsconsole/internal/settings"
	"github.com/tomtom215/nmsconsole/internal/settings/testers"
)

// FeatureFlag is a console feature that operators can switch on or off.
type FeatureFlag struct {
	Name        string
	Default     bool
	Description string
}

// SettingKey returns the setting that controls the flag.
func (f FeatureFlag) SettingKey() string {
	return "NMS_" + f.Name + "_ENABLED"
}

// FeatureFlags lists the console's switchable features.
var FeatureFlags = []FeatureFlag{
	{Name: "TOPOLOGY_EDITOR", Default: true, Description: "Topology editing panel"},
	{Name: "DASHBOARDS", Default: true, Description: "Custom dashboards"},
	{Name: "MAP_CLUSTERING", Default: true, Description: "Cluster dense device markers on the map"},
	{Name: "TELEMETRY_STREAM", Default: false, Description: "Live telemetry over WebSocket"},
}

// Catalog is the compiled settings table.
var Catalog = []settings.SettingDefinition{
	// Server
	{Key: "HOST", DataType: settings.TypeString, DefaultValue: settings.Str("0.0.0.0"), Validations: []string{"hostname"}},
	{Key: "PORT", DataType: settings.TypeInt, DefaultValue: settings.Str("8080"), Validations: []string{"required", "port"}},
	{Key: "CORS_ORIGINS", DataType: settings.TypeStringArray, DefaultValue: settings.Str("*")},
	{Key: "API_RATE_LIMIT", DataType: settings.TypeInt, DefaultValue: settings.Str("30"), Validations: []string{"positive_int"}},
	{Key: "SESSION_SECRET", DataType: settings.TypeSecretString, Validations: []string{"secret"}},

	// Logging
	{Key: "LOG_LEVEL", DataType: settings.TypeString, DefaultValue: settings.Str("info"), Validations: []string{"log_level"}, RequiresRestart: settings.NoRestart()},
	{Key: "LOG_FORMAT", DataType: settings.TypeString, DefaultValue: settings.Str("json"), Validations: []string{"log_format"}},

	// Topology database
	{Key: "MYSQL_HOST", DataType: settings.TypeString, DefaultValue: settings.Str("localhost"), Validations: []string{"hostname"}, Tester: testers.MySQL},
	{Key: "MYSQL_PORT", DataType: settings.TypeInt, DefaultValue: settings.Str("3306"), Validations: []string{"port"}, Tester: testers.MySQL},
	{Key: "MYSQL_USER", DataType: settings.TypeString, DefaultValue: settings.Str("nms"), Tester: testers.MySQL},
	{Key: "MYSQL_PASSWORD", DataType: settings.TypeSecretString, Tester: testers.MySQL},
	{Key: "MYSQL_DATABASE", DataType: settings.TypeString, DefaultValue: settings.Str("nms"), Tester: testers.MySQL},

	// Event bus and telemetry
	{Key: "NATS_URL", DataType: settings.TypeString, DefaultValue: settings.Str("nats://localhost:4222"), Validations: []string{"url"}, Tester: testers.NATS},
	{Key: "TELEMETRY_WS_URL", DataType: settings.TypeString, Validations: []string{"url"}, Tester: testers.TelemetryWS},

	// Map
	{Key: "TILE_SERVER_URL", DataType: settings.TypeString, DefaultValue: settings.Str("https://tile.openstreetmap.org"), Validations: []string{"url"}, Tester: testers.TileServer, RequiresRestart: settings.NoRestart()},
	{Key: "MAP_DEFAULT_ZOOM", DataType: settings.TypeInt, DefaultValue: settings.Str("5"), Validations: []string{"zoom"}, RequiresRestart: settings.NoRestart()},
}

// FeatureFlagDefinitions derives one BOOL setting per feature flag. Flags are
// read per request by the UI, so toggling one needs no restart.
func FeatureFlagDefinitions(flags []FeatureFlag) []settings.SettingDefinition {
	defs := make([]settings.SettingDefinition, 0, len(flags))
	for _, f := range flags {
		defs = append(defs, settings.SettingDefinition{
			Key:             f.SettingKey(),
			DataType:        settings.TypeBool,
			DefaultValue:    settings.Str(strconv.FormatBool(f.Default)),
			RequiresRestart: settings.NoRestart(),
		})
	}
	return defs
}

// NewRegistry builds the console's settings registry from the catalog and
// the feature flags.
func NewRegistry() *settings.Registry {
	defs := make([]settings.SettingDefinition, 0, len(Catalog)+len(FeatureFlags))
	defs = append(defs, Catalog...)
	defs = append(defs, FeatureFlagDefinitions(FeatureFlags)...)
	return settings.NewRegistry(defs...)
}
