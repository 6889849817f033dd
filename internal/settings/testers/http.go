// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package testers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// HTTPTester checks that the URL held by one setting answers with a
// non-error status. Repeated failures against the same deployment open a
// circuit breaker so the settings page cannot hammer a dead endpoint.
type HTTPTester struct {
	key    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker[int]
}

// NewHTTPTester creates a tester for the URL stored in key.
func NewHTTPTester(key string) *HTTPTester {
	return NewHTTPTesterWithClient(key, &http.Client{})
}

// NewHTTPTesterWithClient creates a tester using client.
func NewHTTPTesterWithClient(key string, client *http.Client) *HTTPTester {
	name := "settings-tester-" + key

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &HTTPTester{key: key, client: client, cb: cb}
}

// Test issues a GET against the configured URL.
func (h *HTTPTester) Test(ctx context.Context, v settings.Values) (string, error) {
	target := v.String(h.key)
	if target == "" {
		return "", fmt.Errorf("%s is not set", h.key)
	}

	status, err := h.cb.Execute(func() (int, error) {
		return h.get(ctx, target)
	})
	name := h.cb.Name()
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		return "", fmt.Errorf("%s is failing repeatedly, retry later: %w", target, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	return fmt.Sprintf("%s responded with HTTP %d", target, status), nil
}

func (h *HTTPTester) get(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("invalid URL %q: %w", target, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, fmt.Errorf("%s responded with HTTP %d: %s",
			target, resp.StatusCode, logging.Truncate(string(body), 120))
	}
	return resp.StatusCode, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
