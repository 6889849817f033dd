// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package config defines what the console can be configured with and how
the running process reads it.

# Engine Configuration

EngineConfig holds the switches that decide which settings sources are
read. It is loaded with koanf from defaults (structs provider) and a fixed
set of process environment variables (env provider):

	DISABLE_ENV_FILE             skip the dotenv file when non-empty
	NMS_ENV_FILE                 dotenv location (default .env)
	NMS_SETTINGS_ENABLED         enable the settings file ("false" disables)
	NMS_SETTINGS_FILE            settings file location, resolved per access
	DISABLE_SETTINGS_FILE_DIFF   persist full submissions when non-empty
	NMS_SETTINGS_KEY             encrypt secret settings at rest
	NMS_RESTART_DELAY            restart absorb window (default 1s)
	NMS_TEST_TIMEOUT             connectivity tester bound (default 10s)
	NMS_SHUTDOWN_TIMEOUT         graceful shutdown bound (default 10s)

# Catalog

Catalog lists every setting the console accepts, grouped by concern
(server, logging, topology database, event bus, map). Feature flags are
derived into one BOOL setting each:

	FeatureFlag{Name: "DASHBOARDS"}  ->  NMS_DASHBOARDS_ENABLED

NewRegistry compiles both into the settings.Registry used by the store.

# Runtime Views

Server, Logging and FeatureEnabled read typed configuration out of merged
settings values. ApplyLive pushes the settings that take effect without a
restart (currently the log level) into the running process:

	st, err := store.Initialize(ctx)
	logging.Init(config.Logging(st.Values()))
	config.ApplyLive(st)
*/
package config
