// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"errors"
	"fmt"
	"os"
)

// Merge combines sources, ordered from highest to lowest precedence, into one
// map over keys. For each key the first non-null value wins. A null entry
// never shadows a lower source, and keys set nowhere stay absent so callers
// can apply defaults.
func Merge(sources []EnvMap, keys []string) EnvMap {
	out := make(EnvMap, len(keys))
	for _, k := range keys {
		for _, src := range sources {
			if v, ok := src.Get(k); ok {
				out[k] = Str(v)
				break
			}
		}
	}
	return out
}

// Environment is the live process environment merged values are copied into.
type Environment interface {
	Setenv(key, value string) error
}

// OSEnvironment writes to the real process environment.
type OSEnvironment struct{}

// Setenv calls os.Setenv.
func (OSEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Publish copies every defined entry of m into env so code reading the
// environment directly observes merged values.
func Publish(env Environment, m EnvMap) error {
	var errs []error
	for _, k := range m.Keys() {
		v, ok := m.Get(k)
		if !ok {
			continue
		}
		if err := env.Setenv(k, v); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}
