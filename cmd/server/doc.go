// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package main is the entry point for the NMS Console server.

# Application Architecture

	RootSupervisor ("nmsconsole")
	├── SettingsSupervisor ("settings-layer")
	│   └── Settings file watcher (when NMS_SETTINGS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (settings REST API, health, /metrics)

Startup order:

 1. Engine configuration from the process environment (koanf)
 2. Settings registry from the catalog and feature flags
 3. Settings store: dotenv, process env and settings file merged
 4. Logging reconfigured from the merged settings
 5. Supervisor tree and HTTP server

# Restarts

Saving a setting that requires a restart arms the restart coordinator.
When SIGUSR2 is forwarded the server shuts down gracefully and exits with
status 75 so the launcher (systemd, Docker restart policy) starts it
again with the new settings.

# Signal Handling

SIGINT and SIGTERM stop the supervisor tree and exit with status 0.
*/
package main
