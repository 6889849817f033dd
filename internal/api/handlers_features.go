// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"net/http"

	"github.com/tomtom215/nmsconsole/internal/config"
)

// FeatureView is the live state of one feature flag.
type FeatureView struct {
	Name        string `json:"name"`
	Setting     string `json:"setting"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// FeaturesResponse is the payload of GET /api/v1/features.
type FeaturesResponse struct {
	Features []FeatureView `json:"features"`
}

// GetFeatures reports which console features are switched on. The UI polls
// it, so toggling a flag takes effect without a restart.
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	st := h.store.State()
	if st == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Settings are not initialized")
		return
	}

	values := st.Values()
	views := make([]FeatureView, 0, len(h.features))
	for _, f := range h.features {
		views = append(views, FeatureView{
			Name:        f.Name,
			Setting:     f.SettingKey(),
			Description: f.Description,
			Enabled:     config.FeatureEnabled(values, f),
		})
	}

	WriteSuccess(w, r, FeaturesResponse{Features: views})
}
