// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

// maxBodyBytes bounds settings payloads.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body must be a JSON object of settings")

// decodeSettings reads a flat JSON object of settings from the request body.
// Arrays and objects are rejected.
func decodeSettings(w http.ResponseWriter, r *http.Request) (settings.EnvMap, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errEmptyBody
	}

	m, _, err := settings.DecodeEnvMap(body, true)
	if err != nil {
		return nil, fmt.Errorf("invalid settings payload: %w", err)
	}
	if m == nil {
		return nil, errEmptyBody
	}
	return m, nil
}
