// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

// Package testers provides the connectivity checks run by settings.Store.Test.
package testers

import (
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// Tester group names referenced by the settings catalog.
const (
	MySQL        = "MYSQL"
	TileServer   = "TILE_SERVER"
	NATS         = "NATS"
	TelemetryWS  = "TELEMETRY_WS"
	userAgent    = "nmsconsole-settings-tester"
	maxBodyBytes = 512
)

// Default returns a registry with every built-in tester.
func Default() *settings.TesterRegistry {
	r := settings.NewTesterRegistry()
	r.Register(MySQL, TestMySQL)
	r.Register(TileServer, NewHTTPTester("TILE_SERVER_URL").Test)
	r.Register(NATS, TestNATS)
	r.Register(TelemetryWS, TestWebSocket)
	return r
}
