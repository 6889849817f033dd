// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probes. It reports the process uptime and
// whether the settings store has been initialized.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":       true,
		"initialized": h.store.State() != nil,
		"uptime":      time.Since(h.startTime).Seconds(),
	})
}
