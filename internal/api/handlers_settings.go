// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/settings"
	"github.com/tomtom215/nmsconsole/internal/validation"
)

// SecretMask replaces SECRET_STRING values in responses. Submitting the mask
// back leaves the stored secret untouched.
const SecretMask = "********"

// SettingView describes one registered setting.
type SettingView struct {
	Key             string            `json:"key"`
	Value           *string           `json:"value"`
	Source          settings.Source   `json:"source"`
	Type            settings.DataType `json:"type"`
	Default         *string           `json:"default,omitempty"`
	RequiresRestart bool              `json:"requires_restart"`
	Tester          string            `json:"tester,omitempty"`
	Secret          bool              `json:"secret,omitempty"`
}

// SettingsResponse is the payload of GET /api/v1/settings.
type SettingsResponse struct {
	Settings []SettingView `json:"settings"`
}

// UpdateResponse is the payload of POST /api/v1/settings.
type UpdateResponse struct {
	Changed          []string `json:"changed"`
	Ignored          []string `json:"ignored,omitempty"`
	RestartScheduled bool     `json:"restart_scheduled"`
	Persisted        bool     `json:"persisted"`
	Warning          string   `json:"warning,omitempty"`
}

// TestResponse is the payload of POST /api/v1/settings/test.
type TestResponse struct {
	Results map[string]settings.TestResult `json:"results"`
}

// GetSettings lists every registered setting with its merged value and
// where that value came from. Secrets are masked.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st := h.store.State()
	if st == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Settings are not initialized")
		return
	}

	defs := h.store.Registry().Definitions()
	views := make([]SettingView, 0, len(defs))
	for _, def := range defs {
		view := SettingView{
			Key:             def.Key,
			Source:          st.Source(def.Key),
			Type:            def.DataType,
			Default:         def.DefaultValue,
			RequiresRestart: def.NeedsRestart(),
			Tester:          def.Tester,
			Secret:          def.Secret(),
		}
		if v, ok := st.Get(def.Key); ok {
			view.Value = settings.Str(v)
		}
		if view.Secret {
			view.Value = maskValue(view.Value)
			view.Default = maskValue(view.Default)
		}
		views = append(views, view)
	}

	WriteSuccess(w, r, SettingsResponse{Settings: views})
}

// UpdateSettings validates and applies a partial settings update.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	log := logging.Ctx(r.Context())

	values, err := decodeSettings(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	h.unmask(values)

	_, ignored := h.store.Registry().Filter(values)

	if verr := validation.ValidateSettings(h.store.Registry(), values); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.store.Update(r.Context(), values)
	resp := UpdateResponse{Ignored: ignored, Persisted: true}
	switch {
	case errors.Is(err, settings.ErrNotInitialized):
		rw.ServiceUnavailable("Settings are not initialized")
		return
	case errors.Is(err, settings.ErrPersistFailed):
		log.Error().Err(err).Msg("Settings applied but not persisted")
		resp.Persisted = false
		resp.Warning = "Settings were applied but could not be saved; the server will restart"
	case err != nil:
		log.Error().Err(err).Msg("Settings update failed")
		rw.InternalError("Failed to update settings")
		return
	}

	resp.Changed = result.Changed
	if resp.Changed == nil {
		resp.Changed = []string{}
	}
	resp.RestartScheduled = result.RestartScheduled

	if h.onUpdate != nil && len(result.Changed) > 0 {
		h.onUpdate(result.State)
	}

	rw.Success(resp)
}

// TestSettings runs the connectivity testers for the submitted keys
// without persisting anything.
func (h *Handler) TestSettings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	values, err := decodeSettings(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	h.unmask(values)

	results, err := h.store.Test(r.Context(), values)
	if err != nil {
		if errors.Is(err, settings.ErrNotInitialized) {
			rw.ServiceUnavailable("Settings are not initialized")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Settings test failed")
		rw.InternalError("Failed to run settings tests")
		return
	}

	rw.Success(TestResponse{Results: results})
}

// unmask turns echoed secret masks into null so they change nothing.
func (h *Handler) unmask(values settings.EnvMap) {
	reg := h.store.Registry()
	for key, v := range values {
		if v == nil || *v != SecretMask {
			continue
		}
		if def, ok := reg.Lookup(key); ok && def.Secret() {
			values[key] = nil
		}
	}
}

func maskValue(v *string) *string {
	if v == nil || *v == "" {
		return v
	}
	return settings.Str(SecretMask)
}
