// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

// Package validation checks submitted setting values with
// go-playground/validator v10.
//
// Setting definitions name generic validators ("port", "url", "log_level"
// and so on). Each name maps to a validator tag evaluated with Var against
// the string value, after a data type check for INT and BOOL settings:
//
//	if verr := validation.ValidateSettings(registry, submitted); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// The validator is a lazily built singleton so struct and tag caches are
// shared. Secret values are masked in returned errors.
package validation
