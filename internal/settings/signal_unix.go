// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

//go:build !windows

package settings

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// RestartSignal is the signal exchanged with an external supervisor.
const RestartSignal = syscall.SIGUSR2

// OSSignalChannel carries SIGUSR2 between this process and its supervisor.
//
// The Go runtime ignores SIGUSR2 unless it is notified, so forwarding cannot
// rely on the default disposition. Forward calls the onForward hook instead,
// which is expected to shut the process down.
type OSSignalChannel struct {
	onForward func()
}

// NewOSSignalChannel creates a channel that calls onForward when the restart
// signal is forwarded.
func NewOSSignalChannel(onForward func()) *OSSignalChannel {
	return &OSSignalChannel{onForward: onForward}
}

// Listen subscribes to SIGUSR2.
func (c *OSSignalChannel) Listen() (<-chan struct{}, func()) {
	sigs := make(chan os.Signal, 1)
	out := make(chan struct{}, 1)
	done := make(chan struct{})
	signal.Notify(sigs, RestartSignal)

	go func() {
		defer close(out)
		for {
			select {
			case <-sigs:
				select {
				case out <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}

// Raise sends SIGUSR2 to this process.
func (c *OSSignalChannel) Raise() error {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Signal(RestartSignal)
}

// Forward calls the onForward hook.
func (c *OSSignalChannel) Forward() {
	if c.onForward != nil {
		c.onForward()
	}
}
