// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

// unsetEnv removes keys from the process environment for the duration of
// the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

// mapEnvironment records published values instead of touching os.Environ.
type mapEnvironment struct {
	mu     sync.Mutex
	values map[string]string
	onSet  func(key string)
}

func newMapEnvironment() *mapEnvironment {
	return &mapEnvironment{values: make(map[string]string)}
}

func (e *mapEnvironment) Setenv(key, value string) error {
	e.mu.Lock()
	e.values[key] = value
	hook := e.onSet
	e.mu.Unlock()
	if hook != nil {
		hook(key)
	}
	return nil
}

func (e *mapEnvironment) Get(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.values[key]
	return v, ok
}

// countingRestarter counts restart requests.
type countingRestarter struct {
	n      atomic.Int32
	onCall func()
}

func (r *countingRestarter) RequestRestart() {
	r.n.Add(1)
	if r.onCall != nil {
		r.onCall()
	}
}

func (r *countingRestarter) Count() int {
	return int(r.n.Load())
}

// hookedFileStore wraps a JSONFileStore with write hooks.
type hookedFileStore struct {
	*JSONFileStore
	writeErr error
	onWrite  func()
	writes   atomic.Int32
}

func (s *hookedFileStore) Write(m EnvMap) error {
	s.writes.Add(1)
	if s.onWrite != nil {
		s.onWrite()
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.JSONFileStore.Write(m)
}

// fixedPath resolves to path on every call.
func fixedPath(path string) func() string {
	return func() string { return path }
}

// writeFile writes content to name inside dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// boolPtr returns a pointer to b.
func boolPtr(b bool) *bool {
	return &b
}
