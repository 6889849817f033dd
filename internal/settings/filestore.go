// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nmsconsole/internal/logging"
)

// FileStore persists the settings-file map.
type FileStore interface {
	// Path returns the file location currently in effect.
	Path() string

	// Read returns the persisted map. A missing file yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Read() (EnvMap, error)

	// Write replaces the persisted map.
	Write(m EnvMap) error
}

// PathFromEnv returns a path resolver that reads envVar on every call and
// falls back to def. Relative paths resolve against the working directory.
func PathFromEnv(envVar, def string) func() string {
	return func() string {
		p := os.Getenv(envVar)
		if p == "" {
			p = def
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
}

// JSONFileStore stores settings as a flat JSON object of string values.
type JSONFileStore struct {
	path func() string
}

// NewJSONFileStore creates a store whose location is resolved by path on
// every operation, so relocating the file needs no restart.
func NewJSONFileStore(path func() string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the resolved file location.
func (s *JSONFileStore) Path() string {
	return s.path()
}

// Read parses the settings file.
//
// JSON null is kept as a nil entry. Numbers and booleans are kept as their
// literal text. Arrays and objects cannot be represented and are dropped
// with a warning.
func (s *JSONFileStore) Read() (EnvMap, error) {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSettingsJSON(path, data)
}

// DecodeSettingsJSON parses settings file content read from path. Values
// that are arrays or objects cannot be represented and are dropped with a
// warning.
func DecodeSettingsJSON(path string, data []byte) (EnvMap, error) {
	m, skipped, err := DecodeEnvMap(data, false)
	if err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	for _, key := range skipped {
		logging.Warn().Str("path", path).Str("key", key).
			Msg("Ignoring non-scalar value in settings file")
	}
	if m == nil {
		m = EnvMap{}
	}
	return m, nil
}

// DecodeEnvMap parses a flat JSON object into an EnvMap. Strings are taken
// as is, null becomes a nil entry, numbers and booleans keep their literal
// text. Arrays and objects fail with ErrNonScalarValue when strict is set,
// otherwise they are skipped and their keys returned sorted. A JSON null
// document yields a nil map.
func DecodeEnvMap(data []byte, strict bool) (m EnvMap, skipped []string, err error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, nil
	}

	m = make(EnvMap, len(raw))
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 {
			continue
		}
		switch value[0] {
		case 'n':
			m[key] = nil
		case '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, nil, fmt.Errorf("key %s: %w", key, err)
			}
			m[key] = Str(s)
		case '[', '{':
			if strict {
				return nil, nil, fmt.Errorf("key %s: %w", key, ErrNonScalarValue)
			}
			skipped = append(skipped, key)
		default:
			m[key] = Str(string(value))
		}
	}
	sort.Strings(skipped)
	return m, skipped, nil
}

// Write atomically replaces the settings file with m. Null entries are not
// written. Keys are sorted and indented with two spaces.
func (s *JSONFileStore) Write(m EnvMap) error {
	path := s.Path()

	data, err := json.MarshalIndent(m.Strings(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings file %s: %w", path, err)
	}
	return nil
}
