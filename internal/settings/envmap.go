// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import "sort"

// EnvMap maps setting keys to optional string values.
//
// A key missing from the map is undefined. A key present with a nil value is
// null: it is kept so callers can tell "explicitly null" apart from "not
// supplied", but merge and diff never treat null as a value.
type EnvMap map[string]*string

// Str returns a pointer to s, for building EnvMap literals.
//
//	settings.EnvMap{"PORT": settings.Str("8081"), "LOG_LEVEL": nil}
func Str(s string) *string {
	return &s
}

// FromStrings converts a plain string map into an EnvMap.
func FromStrings(src map[string]string) EnvMap {
	m := make(EnvMap, len(src))
	for k, v := range src {
		m[k] = Str(v)
	}
	return m
}

// Get returns the value for key when it is defined and not null.
func (m EnvMap) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Clone returns a deep copy. Nil entries stay nil.
func (m EnvMap) Clone() EnvMap {
	out := make(EnvMap, len(m))
	for k, v := range m {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = Str(*v)
	}
	return out
}

// Keys returns the defined keys in sorted order, including null entries.
func (m EnvMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings returns the non-null entries as a plain string map.
func (m EnvMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// Only returns the entries of m whose key is in keys. Null entries are kept.
func (m EnvMap) Only(keys []string) EnvMap {
	out := make(EnvMap)
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if v == nil {
				out[k] = nil
			} else {
				out[k] = Str(*v)
			}
		}
	}
	return out
}
