// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
)

// DefaultTestTimeout bounds a single tester run.
const DefaultTestTimeout = 10 * time.Second

// Tester checks that candidate values can reach a dependent service. It
// returns an optional success message. Testers must not modify settings.
type Tester func(ctx context.Context, v Values) (string, error)

// TestResult is the outcome of one tester.
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TesterRegistry maps tester group names to testers.
type TesterRegistry struct {
	mu      sync.RWMutex
	testers map[string]Tester
}

// NewTesterRegistry creates an empty registry.
func NewTesterRegistry() *TesterRegistry {
	return &TesterRegistry{testers: make(map[string]Tester)}
}

// Register adds or replaces the tester for name.
func (r *TesterRegistry) Register(name string, t Tester) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.testers[name] = t
}

// Lookup returns the tester for name.
func (r *TesterRegistry) Lookup(name string) (Tester, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.testers[name]
	return t, ok
}

// Names returns the registered tester names in sorted order.
func (r *TesterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.testers))
	for name := range r.testers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// testerGroups returns the distinct tester names declared by keys, sorted.
func testerGroups(registry *Registry, keys []string) []string {
	seen := make(map[string]struct{})
	var groups []string
	for _, k := range keys {
		def, ok := registry.Lookup(k)
		if !ok || def.Tester == "" {
			continue
		}
		if _, dup := seen[def.Tester]; dup {
			continue
		}
		seen[def.Tester] = struct{}{}
		groups = append(groups, def.Tester)
	}
	sort.Strings(groups)
	return groups
}

// runTesters runs every group concurrently and waits for all of them. A
// failing or panicking tester only affects its own result.
func runTesters(ctx context.Context, testers *TesterRegistry, groups []string, v Values, timeout time.Duration) map[string]TestResult {
	results := make([]TestResult, len(groups))

	var g errgroup.Group
	for i, name := range groups {
		g.Go(func() error {
			results[i] = runTester(ctx, testers, name, v, timeout)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]TestResult, len(groups))
	for i, name := range groups {
		out[name] = results[i]
	}
	return out
}

func runTester(ctx context.Context, testers *TesterRegistry, name string, v Values, timeout time.Duration) (result TestResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Str("tester", name).Interface("panic", r).Msg("Settings tester panicked")
			result = TestResult{Success: false, Message: fmt.Sprintf("tester panicked: %v", r)}
		}
		metrics.RecordTesterRun(name, result.Success, time.Since(start))
	}()

	tester, ok := testers.Lookup(name)
	if !ok {
		return TestResult{Success: false, Message: fmt.Sprintf("no tester registered for %s", name)}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := tester(ctx, v)
	if err != nil {
		logging.Ctx(ctx).Info().Err(err).Str("tester", name).Msg("Settings tester failed")
		return TestResult{Success: false, Message: err.Error()}
	}
	return TestResult{Success: true, Message: msg}
}
