// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"sync"
	"time"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
)

// DefaultRestartDelay is how long a restart cycle waits for an external
// supervisor's signal before raising its own.
const DefaultRestartDelay = time.Second

// RestartState is the restart coordinator's lifecycle state.
type RestartState int

const (
	RestartIdle RestartState = iota
	RestartRequested
	SignalAbsorbed
	SignalForwarded
)

func (s RestartState) String() string {
	switch s {
	case RestartIdle:
		return "IDLE"
	case RestartRequested:
		return "RESTART_REQUESTED"
	case SignalAbsorbed:
		return "SIGNAL_ABSORBED"
	case SignalForwarded:
		return "SIGNAL_FORWARDED"
	default:
		return "UNKNOWN"
	}
}

// SignalChannel carries the process restart signal.
type SignalChannel interface {
	// Listen registers a listener. The returned channel receives one value
	// per delivered signal and is closed once stop has been called.
	Listen() (signals <-chan struct{}, stop func())

	// Raise delivers the restart signal to this process.
	Raise() error

	// Forward lets the process terminate so its launcher can restart it.
	Forward()
}

// Restarter schedules a process restart.
type Restarter interface {
	RequestRestart()
}

// RestartCoordinator absorbs restart signals that arrive while settings are
// being written and forwards the one it raises itself once the write settled.
//
// A cycle starts with RequestRestart. Signals received during the first delay
// are absorbed. When the delay elapses the coordinator raises the signal and
// forwards the next one it receives. If raising fails, or nothing arrives
// within a second delay, it forwards directly, so a restart always happens
// whether or not an external supervisor is present.
type RestartCoordinator struct {
	channel SignalChannel
	delay   time.Duration

	mu      sync.Mutex
	state   RestartState
	cycle   uint64
	prevent bool
	stop    func()
}

// NewRestartCoordinator creates a coordinator. A non-positive delay uses
// DefaultRestartDelay.
func NewRestartCoordinator(channel SignalChannel, delay time.Duration) *RestartCoordinator {
	if delay <= 0 {
		delay = DefaultRestartDelay
	}
	return &RestartCoordinator{channel: channel, delay: delay}
}

// State returns the current lifecycle state.
func (c *RestartCoordinator) State() RestartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RequestRestart starts a new restart cycle, replacing any cycle in progress.
func (c *RestartCoordinator) RequestRestart() {
	c.mu.Lock()
	if c.stop != nil {
		c.stop()
	}
	signals, stop := c.channel.Listen()
	c.cycle++
	cycle := c.cycle
	c.stop = stop
	c.prevent = true
	c.state = RestartRequested
	c.mu.Unlock()

	metrics.RestartRequests.Inc()
	logging.Info().Dur("delay", c.delay).Msg("Restart requested")

	go c.run(cycle, signals)
}

func (c *RestartCoordinator) run(cycle uint64, signals <-chan struct{}) {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	raised := false
	for {
		select {
		case _, ok := <-signals:
			if !ok || c.onSignal(cycle) {
				return
			}

		case <-timer.C:
			if raised {
				logging.Warn().Msg("Raised restart signal was not delivered, forwarding directly")
				c.forward(cycle)
				return
			}
			if !c.allow(cycle) {
				return
			}
			raised = true
			metrics.RestartSignals.WithLabelValues("raised").Inc()
			if err := c.channel.Raise(); err != nil {
				logging.Warn().Err(err).Msg("Failed to raise restart signal, forwarding directly")
				c.forward(cycle)
				return
			}
			timer.Reset(c.delay)
		}
	}
}

// allow ends the absorb window. It returns false when cycle is stale.
func (c *RestartCoordinator) allow(cycle uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cycle != cycle {
		return false
	}
	c.prevent = false
	return true
}

// onSignal handles one delivered signal and reports whether the cycle ended.
func (c *RestartCoordinator) onSignal(cycle uint64) bool {
	c.mu.Lock()
	if c.cycle != cycle {
		c.mu.Unlock()
		return true
	}
	if c.prevent {
		c.state = SignalAbsorbed
		c.mu.Unlock()
		metrics.RestartSignals.WithLabelValues("absorbed").Inc()
		logging.Info().Msg("Absorbed restart signal while settings are being applied")
		return false
	}
	c.mu.Unlock()

	c.forward(cycle)
	return true
}

func (c *RestartCoordinator) forward(cycle uint64) {
	c.mu.Lock()
	if c.cycle != cycle {
		c.mu.Unlock()
		return
	}
	c.state = SignalForwarded
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	c.mu.Unlock()

	metrics.RestartSignals.WithLabelValues("forwarded").Inc()
	logging.Info().Msg("Forwarding restart signal")
	c.channel.Forward()
}
