// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

// Package logging provides the zerolog-based structured logger shared by the
// console.
//
// A global logger is configured once at startup with Init and used through the
// level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("key", "PORT").Msg("Setting changed")
//	logging.Error().Err(err).Str("path", path).Msg("Failed to write settings file")
//
// Request-scoped logging attaches the request ID set by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Msg("Rejected settings update")
//
// The settings engine logs before the configuration layer has run, so the
// package initializes itself with DefaultConfig. NMS_QUIET_LOGS=1 raises the
// initial level to fatal, which keeps test output readable.
//
// SlogHandler bridges slog-only libraries, such as the supervisor tree, onto
// the same zerolog stream. MaskSecret keeps secret setting values out of logs.
package logging
