// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"time"

	"github.com/tomtom215/nmsconsole/internal/config"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// Handler serves the settings API on top of a settings.Store.
type Handler struct {
	store     *settings.Store
	onUpdate  func(*settings.State)
	features  []config.FeatureFlag
	startTime time.Time
}

// NewHandler creates a handler for store. onUpdate, when non-nil, is called
// with the new state after every successful update so settings that need no
// restart can be applied in place.
func NewHandler(store *settings.Store, onUpdate func(*settings.State)) *Handler {
	return &Handler{
		store:     store,
		onUpdate:  onUpdate,
		startTime: time.Now(),
	}
}

// ConfigureFeatures sets the feature flags reported by GET /api/v1/features.
func (h *Handler) ConfigureFeatures(flags []config.FeatureFlag) {
	h.features = flags
}
