// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package services provides suture.Service wrappers for the console's
long-running components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so supervisor logs name the service.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server, converting ListenAndServe to Serve
  - Graceful shutdown with a bounded timeout on context cancellation

Settings Watcher (SettingsWatcher):
  - Watches the settings file with koanf's file provider (fsnotify)
  - Waits for writes to settle, then compares the file with the store's
    persisted map
  - Logs and counts drift (settings_file_drift_total); never applies it
  - A missing or removed file is waited for, watching the parent directory
*/
package services
