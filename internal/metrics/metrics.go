// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Settings Store Metrics
	SettingsUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_updates_total",
			Help: "Total number of settings update calls by outcome",
		},
		[]string{"result"}, // "applied", "noop", "persist_failed"
	)

	SettingsChangedKeysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_changed_keys_total",
			Help: "Total number of setting keys changed by updates",
		},
	)

	SettingsFileWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_file_write_failures_total",
			Help: "Total number of failed settings file writes",
		},
	)

	SettingsSourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_source_errors_total",
			Help: "Total number of unreadable settings sources recovered as empty",
		},
		[]string{"source"}, // "dotenv", "settings_file"
	)

	SettingsFileDrift = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_file_drift_total",
			Help: "Number of times the settings file changed on disk outside the store",
		},
	)

	SettingsLastUpdate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "settings_last_update_timestamp_seconds",
			Help: "Unix timestamp of the last applied settings update",
		},
	)

	// Restart Coordinator Metrics
	RestartRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settings_restart_requests_total",
			Help: "Total number of restart cycles started by settings changes",
		},
	)

	RestartSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_restart_signals_total",
			Help: "Restart signals handled by the coordinator",
		},
		[]string{"action"}, // "absorbed", "raised", "forwarded"
	)

	// Settings Tester Metrics
	TesterRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_tester_runs_total",
			Help: "Total number of connectivity tester runs",
		},
		[]string{"tester", "result"}, // result: "success", "failure"
	)

	TesterDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settings_tester_duration_seconds",
			Help:    "Connectivity tester duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tester"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordSettingsUpdate records the outcome of a settings update.
func RecordSettingsUpdate(changedKeys int, persistErr error) {
	switch {
	case changedKeys == 0:
		SettingsUpdatesTotal.WithLabelValues("noop").Inc()
		return
	case persistErr != nil:
		SettingsUpdatesTotal.WithLabelValues("persist_failed").Inc()
		SettingsFileWriteFailures.Inc()
	default:
		SettingsUpdatesTotal.WithLabelValues("applied").Inc()
	}
	SettingsChangedKeysTotal.Add(float64(changedKeys))
	SettingsLastUpdate.Set(float64(time.Now().Unix()))
}

// RecordTesterRun records one connectivity tester run.
func RecordTesterRun(tester string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	TesterRuns.WithLabelValues(tester, result).Inc()
	TesterDuration.WithLabelValues(tester).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
