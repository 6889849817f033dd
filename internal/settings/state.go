// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

// Source identifies where a merged value came from.
type Source string

const (
	SourceSettingsFile Source = "settings_file"
	SourceEnvironment  Source = "environment"
	SourceDotenv       Source = "dotenv"
	SourceDefault      Source = "default"
	SourceUnset        Source = "unset"
)

// State is an immutable snapshot of the reconciled settings.
//
// current is always derived from the three source maps by Merge and is never
// set on its own. Every accessor returns a copy, so a published State cannot
// be changed by its readers.
type State struct {
	registry        *Registry
	initialEnv      EnvMap
	dotenvEnv       EnvMap
	settingsFileEnv EnvMap
	current         EnvMap
}

func newState(registry *Registry, initialEnv, dotenvEnv, settingsFileEnv EnvMap) *State {
	s := &State{
		registry:        registry,
		initialEnv:      initialEnv.Clone(),
		dotenvEnv:       dotenvEnv.Clone(),
		settingsFileEnv: settingsFileEnv.Clone(),
	}
	s.current = Merge(s.sources(), registry.Keys())
	return s
}

// sources lists the source maps from highest to lowest precedence.
func (s *State) sources() []EnvMap {
	return []EnvMap{s.settingsFileEnv, s.initialEnv, s.dotenvEnv}
}

// Registry returns the registry the state was built from.
func (s *State) Registry() *Registry { return s.registry }

// Current returns the merged map.
func (s *State) Current() EnvMap { return s.current.Clone() }

// InitialEnv returns the registered keys read from the process environment at boot.
func (s *State) InitialEnv() EnvMap { return s.initialEnv.Clone() }

// DotenvEnv returns the registered keys read from the dotenv file at boot.
func (s *State) DotenvEnv() EnvMap { return s.dotenvEnv.Clone() }

// SettingsFileEnv returns the persisted settings-file map.
func (s *State) SettingsFileEnv() EnvMap { return s.settingsFileEnv.Clone() }

// Get returns the merged value for key, without applying defaults.
func (s *State) Get(key string) (string, bool) {
	return s.current.Get(key)
}

// Values returns a typed view over the merged map with defaults applied.
func (s *State) Values() Values {
	return NewValues(s.current.Clone(), s.registry)
}

// Source reports which source the merged value of key came from.
func (s *State) Source(key string) Source {
	switch {
	case has(s.settingsFileEnv, key):
		return SourceSettingsFile
	case has(s.initialEnv, key):
		return SourceEnvironment
	case has(s.dotenvEnv, key):
		return SourceDotenv
	}
	if _, ok := s.registry.Default(key); ok {
		return SourceDefault
	}
	return SourceUnset
}

func has(m EnvMap, key string) bool {
	_, ok := m.Get(key)
	return ok
}
