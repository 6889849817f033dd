// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package config

import (
	"net"
	"strconv"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// ServerConfig is the HTTP server configuration derived from settings.
type ServerConfig struct {
	Host          string
	Port          int
	CORSOrigins   []string
	TestRateLimit int
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server reads the server configuration from merged settings.
func Server(v settings.Values) ServerConfig {
	return ServerConfig{
		Host:          v.String("HOST"),
		Port:          v.IntOr("PORT", 8080),
		CORSOrigins:   v.StringSlice("CORS_ORIGINS"),
		TestRateLimit: v.IntOr("API_RATE_LIMIT", 30),
	}
}

// Logging reads the logging configuration from merged settings.
func Logging(v settings.Values) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = v.String("LOG_LEVEL")
	cfg.Format = v.String("LOG_FORMAT")
	return cfg
}

// ApplyLive applies settings that take effect without a restart.
func ApplyLive(st *settings.State) {
	logging.SetLevelString(st.Values().String("LOG_LEVEL"))
}

// FeatureEnabled reports whether flag is switched on.
func FeatureEnabled(v settings.Values, flag FeatureFlag) bool {
	return v.BoolOr(flag.SettingKey(), flag.Default)
}
