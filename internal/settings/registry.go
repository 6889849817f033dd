// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"regexp"

	"github.com/tomtom215/nmsconsole/internal/logging"
)

// DataType tags how a setting's string value should be interpreted.
type DataType string

const (
	TypeInt          DataType = "INT"
	TypeString       DataType = "STRING"
	TypeBool         DataType = "BOOL"
	TypeSecretString DataType = "SECRET_STRING"
	TypeStringArray  DataType = "STRING_ARRAY"
)

// Valid reports whether t is a known data type.
func (t DataType) Valid() bool {
	switch t {
	case TypeInt, TypeString, TypeBool, TypeSecretString, TypeStringArray:
		return true
	}
	return false
}

// SettingDefinition is the static metadata for one configuration key.
type SettingDefinition struct {
	Key          string
	DataType     DataType
	DefaultValue *string

	// RequiresRestart defaults to true when nil.
	RequiresRestart *bool

	// Validations names generic validators applied to submitted values.
	Validations []string

	// Tester names the connectivity tester group this key belongs to.
	Tester string
}

// NeedsRestart reports whether changing this setting requires a restart.
func (d SettingDefinition) NeedsRestart() bool {
	return d.RequiresRestart == nil || *d.RequiresRestart
}

// Secret reports whether the value must be masked when displayed.
func (d SettingDefinition) Secret() bool {
	return d.DataType == TypeSecretString
}

// NoRestart is a convenience for SettingDefinition.RequiresRestart.
func NoRestart() *bool {
	f := false
	return &f
}

// Setting keys double as environment variable names.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Registry is an immutable table of setting definitions.
type Registry struct {
	defs map[string]SettingDefinition
	keys []string
}

// NewRegistry builds a registry from defs in order.
//
// A duplicate key is logged as an error and the later definition wins.
// Definitions whose key is not a valid environment variable name are logged
// and skipped.
func NewRegistry(defs ...SettingDefinition) *Registry {
	r := &Registry{defs: make(map[string]SettingDefinition, len(defs))}

	for _, def := range defs {
		if !keyPattern.MatchString(def.Key) {
			logging.Error().Str("key", def.Key).Msg("Skipping setting with invalid key")
			continue
		}
		if !def.DataType.Valid() {
			logging.Error().Str("key", def.Key).Str("data_type", string(def.DataType)).
				Msg("Setting has unknown data type, treating as STRING")
			def.DataType = TypeString
		}
		if _, exists := r.defs[def.Key]; exists {
			logging.Error().Str("key", def.Key).Msg("Duplicate setting definition, later definition wins")
		} else {
			r.keys = append(r.keys, def.Key)
		}
		r.defs[def.Key] = copyDefinition(def)
	}

	return r
}

func copyDefinition(def SettingDefinition) SettingDefinition {
	if def.DefaultValue != nil {
		def.DefaultValue = Str(*def.DefaultValue)
	}
	if def.RequiresRestart != nil {
		b := *def.RequiresRestart
		def.RequiresRestart = &b
	}
	if def.Validations != nil {
		def.Validations = append([]string(nil), def.Validations...)
	}
	return def
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Lookup returns a copy of the definition for key.
func (r *Registry) Lookup(key string) (SettingDefinition, bool) {
	def, ok := r.defs[key]
	if !ok {
		return SettingDefinition{}, false
	}
	return copyDefinition(def), true
}

// Definitions returns copies of every definition in registration order.
func (r *Registry) Definitions() []SettingDefinition {
	out := make([]SettingDefinition, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, copyDefinition(r.defs[k]))
	}
	return out
}

// Default returns the compiled-in default for key, if any.
func (r *Registry) Default(key string) (string, bool) {
	def, ok := r.defs[key]
	if !ok || def.DefaultValue == nil {
		return "", false
	}
	return *def.DefaultValue, true
}

// RequiresRestart reports whether any of keys needs a restart when changed.
// Unregistered keys are ignored.
func (r *Registry) RequiresRestart(keys []string) bool {
	for _, k := range keys {
		if def, ok := r.defs[k]; ok && def.NeedsRestart() {
			return true
		}
	}
	return false
}

// Filter returns the entries of m with a registered key, plus the sorted
// list of keys that were dropped.
func (r *Registry) Filter(m EnvMap) (EnvMap, []string) {
	kept := make(EnvMap, len(m))
	var dropped []string
	for _, k := range m.Keys() {
		if _, ok := r.defs[k]; !ok {
			dropped = append(dropped, k)
			continue
		}
		kept[k] = m[k]
	}
	return kept, dropped
}
