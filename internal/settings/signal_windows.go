// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

//go:build windows

package settings

import "sync"

// OSSignalChannel has no restart signal on Windows. Listen never fires and
// Raise fails, so the coordinator forwards as soon as its delay elapses.
type OSSignalChannel struct {
	onForward func()
}

// NewOSSignalChannel creates a channel that calls onForward when a restart
// is forwarded.
func NewOSSignalChannel(onForward func()) *OSSignalChannel {
	return &OSSignalChannel{onForward: onForward}
}

// Listen returns a channel that only closes when stopped.
func (c *OSSignalChannel) Listen() (<-chan struct{}, func()) {
	out := make(chan struct{})
	var once sync.Once
	return out, func() {
		once.Do(func() { close(out) })
	}
}

// Raise always fails.
func (c *OSSignalChannel) Raise() error {
	return ErrSignalsUnsupported
}

// Forward calls the onForward hook.
func (c *OSSignalChannel) Forward() {
	if c.onForward != nil {
		c.onForward()
	}
}
