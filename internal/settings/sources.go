// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
)

// FromMap returns the entries of src whose key is registered. Unregistered
// keys are dropped so stray variables never reach persisted state.
func FromMap(keys []string, src map[string]string) EnvMap {
	return FromStrings(src).Only(keys)
}

// ReadProcessEnv reads the registered keys from the process environment.
func ReadProcessEnv(keys []string) EnvMap {
	registered := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		registered[k] = struct{}{}
	}

	// Keys never contain the delimiter, so koanf keeps them flat.
	k := koanf.New(".")
	provider := env.Provider("", ".", func(key string) string {
		if _, ok := registered[key]; !ok {
			return ""
		}
		return key
	})
	if err := k.Load(provider, nil); err != nil {
		logging.Error().Err(err).Msg("Failed to read process environment")
		return EnvMap{}
	}

	src := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		src[key] = k.String(key)
	}
	return FromMap(keys, src)
}

// ReadDotenv reads registered keys from a dotenv file. A missing file yields
// an empty map quietly. A malformed file is logged and yields an empty map.
func ReadDotenv(path string, keys []string) EnvMap {
	src, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug().Str("path", path).Msg("No dotenv file found")
			return EnvMap{}
		}
		metrics.SettingsSourceErrors.WithLabelValues("dotenv").Inc()
		logging.Error().Err(err).Str("path", path).Msg("Failed to parse dotenv file, ignoring it")
		return EnvMap{}
	}
	return FromMap(keys, src)
}

// ReadSettingsFile reads registered keys from the persisted settings file.
//
// It never fails: a disabled or missing file yields an empty map with a
// warning, and unparsable content yields an empty map with an error log.
func ReadSettingsFile(store FileStore, enabled bool, keys []string) EnvMap {
	if !enabled {
		logging.Warn().Msg("Settings file disabled, persisted settings will not be loaded")
		return EnvMap{}
	}

	m, err := store.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn().Str("path", store.Path()).Msg("Settings file not found, starting with no persisted settings")
			return EnvMap{}
		}
		metrics.SettingsSourceErrors.WithLabelValues("settings_file").Inc()
		logging.Error().Err(err).Str("path", store.Path()).Msg("Failed to read settings file, ignoring it")
		return EnvMap{}
	}
	return m.Only(keys)
}
