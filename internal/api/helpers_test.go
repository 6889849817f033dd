// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

type discardEnvironment struct{}

func (discardEnvironment) Setenv(string, string) error { return nil }

type countingRestarter struct{ n atomic.Int32 }

func (r *countingRestarter) RequestRestart() { r.n.Add(1) }

// failingFileStore reads like an empty file and refuses writes.
type failingFileStore struct{}

func (failingFileStore) Path() string                  { return "/nonexistent/settings.json" }
func (failingFileStore) Read() (settings.EnvMap, error) { return nil, os.ErrNotExist }
func (failingFileStore) Write(settings.EnvMap) error    { return errors.New("read-only filesystem") }

// testFixture is a store with a small registry, a settings file in a temp
// dir and a recording DB tester.
type testFixture struct {
	store     *settings.Store
	restarter *countingRestarter
	path      string

	mu       sync.Mutex
	dbValues []settings.Values
}

func testRegistry() *settings.Registry {
	return settings.NewRegistry(
		settings.SettingDefinition{Key: "APITEST_PORT", DataType: settings.TypeInt, DefaultValue: settings.Str("8080"), Validations: []string{"required", "port"}},
		settings.SettingDefinition{Key: "APITEST_LOG_LEVEL", DataType: settings.TypeString, DefaultValue: settings.Str("info"), Validations: []string{"log_level"}, RequiresRestart: settings.NoRestart()},
		settings.SettingDefinition{Key: "APITEST_DB_HOST", DataType: settings.TypeString, Tester: "DB"},
		settings.SettingDefinition{Key: "APITEST_DB_PASSWORD", DataType: settings.TypeSecretString, Tester: "DB"},
	)
}

func newFixture(t *testing.T, fileContent string, opts ...settings.Option) *testFixture {
	t.Helper()

	f := &testFixture{
		restarter: &countingRestarter{},
		path:      filepath.Join(t.TempDir(), "settings.json"),
	}
	if fileContent != "" {
		if err := os.WriteFile(f.path, []byte(fileContent), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	testers := settings.NewTesterRegistry()
	testers.Register("DB", func(ctx context.Context, v settings.Values) (string, error) {
		f.mu.Lock()
		f.dbValues = append(f.dbValues, v)
		f.mu.Unlock()
		if v.String("APITEST_DB_HOST") == "unreachable" {
			return "", errors.New("connection refused")
		}
		return "connected", nil
	})

	path := f.path
	base := []settings.Option{
		settings.WithFileStore(settings.NewJSONFileStore(func() string { return path })),
		settings.WithEnvironment(discardEnvironment{}),
		settings.WithRestarter(f.restarter),
		settings.WithTesters(testers),
		settings.WithFlags(settings.Flags{DotenvDisabled: true, SettingsFileEnabled: true}),
	}
	f.store = settings.NewStore(testRegistry(), append(base, opts...)...)
	if _, err := f.store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return f
}

// do sends a request through the full router and decodes the envelope.
func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

// decodeData re-decodes the envelope's data into out.
func decodeData(t *testing.T, resp APIResponse, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
