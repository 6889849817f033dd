// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package metrics provides the Prometheus collectors exported on /metrics.

All collectors are registered on the default registry through promauto, so
importing the package is enough to expose them.

Settings Metrics:
  - settings_updates_total{result}: update calls by outcome (applied, noop, persist_failed)
  - settings_changed_keys_total: keys changed by applied updates
  - settings_file_write_failures_total: failed settings file writes
  - settings_source_errors_total{source}: unreadable dotenv or settings files
  - settings_file_drift_total: out-of-band edits to the settings file
  - settings_restart_requests_total: restart cycles started
  - settings_restart_signals_total{action}: absorbed, raised and forwarded signals
  - settings_tester_runs_total{tester,result} and settings_tester_duration_seconds{tester}

HTTP Metrics:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Circuit Breaker Metrics:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
