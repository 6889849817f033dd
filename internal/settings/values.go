// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Values is a typed read view over an EnvMap. Keys without a value fall back
// to the registry default.
type Values struct {
	m        EnvMap
	registry *Registry
}

// NewValues wraps m. registry may be nil, in which case no defaults apply.
func NewValues(m EnvMap, registry *Registry) Values {
	return Values{m: m, registry: registry}
}

// Lookup returns the value for key, falling back to its default.
func (v Values) Lookup(key string) (string, bool) {
	if s, ok := v.m.Get(key); ok {
		return s, true
	}
	if v.registry != nil {
		return v.registry.Default(key)
	}
	return "", false
}

// String returns the value for key, or "" when unset.
func (v Values) String(key string) string {
	s, _ := v.Lookup(key)
	return s
}

// Int parses the value for key as a base-10 integer.
func (v Values) Int(key string) (int, error) {
	s, ok := v.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("setting %s is not set", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("setting %s: %q is not an integer", key, s)
	}
	return n, nil
}

// IntOr returns the integer value for key, or def when unset or invalid.
func (v Values) IntOr(key string, def int) int {
	n, err := v.Int(key)
	if err != nil {
		return def
	}
	return n
}

// Bool parses the value for key with strconv.ParseBool.
func (v Values) Bool(key string) (bool, error) {
	s, ok := v.Lookup(key)
	if !ok {
		return false, fmt.Errorf("setting %s is not set", key)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("setting %s: %q is not a boolean", key, s)
	}
	return b, nil
}

// BoolOr returns the boolean value for key, or def when unset or invalid.
func (v Values) BoolOr(key string, def bool) bool {
	b, err := v.Bool(key)
	if err != nil {
		return def
	}
	return b
}

// StringSlice splits a comma-separated value, trimming whitespace and
// dropping empty elements.
func (v Values) StringSlice(key string) []string {
	return SplitList(v.String(key))
}

// SplitList splits a comma-separated STRING_ARRAY value.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
