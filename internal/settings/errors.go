// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import "errors"

var (
	// ErrAlreadyInitialized is returned by Store.Initialize on a second call.
	ErrAlreadyInitialized = errors.New("settings store already initialized")

	// ErrNotInitialized is returned by Update and Test before Initialize.
	ErrNotInitialized = errors.New("settings store not initialized")

	// ErrPersistFailed wraps settings file write failures returned by Update.
	// The update is still applied in memory and a restart is scheduled.
	ErrPersistFailed = errors.New("failed to persist settings file")

	// ErrNonScalarValue is returned by strict decoding when a setting value
	// is a JSON array or object.
	ErrNonScalarValue = errors.New("value must be a string, number, boolean or null")

	// ErrSignalsUnsupported is returned by signal channels on platforms
	// without a user-defined restart signal.
	ErrSignalsUnsupported = errors.New("restart signal not supported on this platform")
)
