// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/nmsconsole/internal/config"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

var testFeatures = []config.FeatureFlag{
	{Name: "APITEST_BETA", Default: false, Description: "Beta panel"},
	{Name: "APITEST_MAPS", Default: true},
}

func newFeatureRouter(t *testing.T, fileContent string) (http.Handler, *settings.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(fileContent), 0o600); err != nil {
		t.Fatal(err)
	}

	store := settings.NewStore(settings.NewRegistry(config.FeatureFlagDefinitions(testFeatures)...),
		settings.WithFileStore(settings.NewJSONFileStore(func() string { return path })),
		settings.WithEnvironment(discardEnvironment{}),
		settings.WithRestarter(&countingRestarter{}),
		settings.WithFlags(settings.Flags{DotenvDisabled: true, SettingsFileEnabled: true}),
	)
	if _, err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	handler := NewHandler(store, nil)
	handler.ConfigureFeatures(testFeatures)
	return NewRouter(handler, nil).SetupChi(), store
}

func TestGetFeatures(t *testing.T) {
	t.Parallel()

	h, _ := newFeatureRouter(t, `{"NMS_APITEST_BETA_ENABLED": "true"}`)
	rec, resp := do(t, h, http.MethodGet, "/api/v1/features", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var data FeaturesResponse
	decodeData(t, resp, &data)

	want := []FeatureView{
		{Name: "APITEST_BETA", Setting: "NMS_APITEST_BETA_ENABLED", Description: "Beta panel", Enabled: true},
		{Name: "APITEST_MAPS", Setting: "NMS_APITEST_MAPS_ENABLED", Enabled: true},
	}
	if diff := cmp.Diff(want, data.Features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestGetFeatures_ToggleWithoutRestart(t *testing.T) {
	t.Parallel()

	h, _ := newFeatureRouter(t, "{}")

	rec, resp := do(t, h, http.MethodPost, "/api/v1/settings", `{"NMS_APITEST_MAPS_ENABLED": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var update UpdateResponse
	decodeData(t, resp, &update)
	if update.RestartScheduled {
		t.Error("toggling a feature flag should not schedule a restart")
	}

	_, resp = do(t, h, http.MethodGet, "/api/v1/features", "")
	var data FeaturesResponse
	decodeData(t, resp, &data)
	for _, f := range data.Features {
		if f.Name == "APITEST_MAPS" && f.Enabled {
			t.Error("APITEST_MAPS still enabled after update")
		}
	}
}
