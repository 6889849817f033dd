// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package supervisor runs the console's long-lived services under suture v4.

	RootSupervisor ("nmsconsole")
	├── SettingsSupervisor ("settings-layer")
	│   └── SettingsWatcher (when the settings file is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. Supervisor events are logged
through sutureslog, which main wires to zerolog with logging.NewSlogLogger.

Restarts that apply new settings are not handled here. They go through the
settings.RestartCoordinator, which ends the process so the external process
manager can start it again.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSettingsService(services.NewSettingsWatcher(store))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
