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
	"sync/atomic"
	"time"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
)

// Flags are the engine switches read once at boot.
type Flags struct {
	// DotenvDisabled skips the dotenv file entirely.
	DotenvDisabled bool

	// DotenvPath is the dotenv file location. Default: .env
	DotenvPath string

	// SettingsFileEnabled gates loading the persisted settings file.
	SettingsFileEnabled bool

	// DiffDisabled persists every submitted value instead of only changes.
	DiffDisabled bool
}

// Option configures a Store.
type Option func(*Store)

// WithFileStore sets the settings file store.
// Default: settings.json in the working directory, overridable per call by
// NMS_SETTINGS_FILE.
func WithFileStore(fs FileStore) Option {
	return func(s *Store) { s.files = fs }
}

// WithEnvironment sets where merged values are published.
// Default: the process environment.
func WithEnvironment(env Environment) Option {
	return func(s *Store) { s.env = env }
}

// WithRestarter sets the component that restarts the process.
func WithRestarter(r Restarter) Option {
	return func(s *Store) { s.restarter = r }
}

// WithTesters sets the connectivity tester registry.
func WithTesters(t *TesterRegistry) Option {
	return func(s *Store) { s.testers = t }
}

// WithFlags sets the engine switches.
func WithFlags(f Flags) Option {
	return func(s *Store) { s.flags = f }
}

// WithTestTimeout bounds each tester run.
func WithTestTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.testTimeout = d
		}
	}
}

// UpdateResult describes an applied update.
type UpdateResult struct {
	State *State

	// Changed lists the keys written to the settings file, sorted.
	Changed []string

	// RestartScheduled is true when a restart cycle was started.
	RestartScheduled bool
}

// Store owns the live settings State.
//
// The State is swapped atomically, so readers never see a partial update.
// Update calls are serialized by the store.
type Store struct {
	registry    *Registry
	files       FileStore
	env         Environment
	restarter   Restarter
	testers     *TesterRegistry
	flags       Flags
	testTimeout time.Duration

	mu    sync.Mutex
	state atomic.Pointer[State]
}

// NewStore creates a store for registry. It holds no state until Initialize.
func NewStore(registry *Registry, opts ...Option) *Store {
	s := &Store{
		registry:    registry,
		files:       NewJSONFileStore(PathFromEnv("NMS_SETTINGS_FILE", "settings.json")),
		env:         OSEnvironment{},
		restarter:   logOnlyRestarter{},
		testers:     NewTesterRegistry(),
		flags:       Flags{DotenvPath: ".env", SettingsFileEnabled: true},
		testTimeout: DefaultTestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.flags.DotenvPath == "" {
		s.flags.DotenvPath = ".env"
	}
	return s
}

// Registry returns the store's registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// FileStore returns the settings file store.
func (s *Store) FileStore() FileStore {
	return s.files
}

// Testers returns the tester registry.
func (s *Store) Testers() *TesterRegistry {
	return s.testers
}

// Initialize reads every source, merges them, publishes the result to the
// environment and stores the first State.
func (s *Store) Initialize(ctx context.Context) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Load() != nil {
		return nil, ErrAlreadyInitialized
	}

	keys := s.registry.Keys()
	initialEnv := ReadProcessEnv(keys)

	dotenvEnv := EnvMap{}
	if !s.flags.DotenvDisabled {
		dotenvEnv = ReadDotenv(s.flags.DotenvPath, keys)
	}

	fileEnv := ReadSettingsFile(s.files, s.flags.SettingsFileEnabled, keys)

	st := newState(s.registry, initialEnv, dotenvEnv, fileEnv)
	if err := Publish(s.env, st.current); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to publish settings to environment")
	}
	s.state.Store(st)

	logging.Ctx(ctx).Info().
		Int("registered", s.registry.Len()).
		Int("environment", len(initialEnv)).
		Int("dotenv", len(dotenvEnv)).
		Int("settings_file", len(fileEnv)).
		Str("path", s.files.Path()).
		Msg("Settings initialized")

	if missing := s.UnregisteredTesters(); len(missing) > 0 {
		logging.Ctx(ctx).Warn().Strs("testers", missing).
			Msg("Settings reference testers that are not registered, their tests will fail")
	}

	return st, nil
}

// UnregisteredTesters lists the tester names declared by definitions that
// have no tester registered, sorted.
func (s *Store) UnregisteredTesters() []string {
	registered := make(map[string]struct{})
	for _, name := range s.testers.Names() {
		registered[name] = struct{}{}
	}

	var missing []string
	for _, def := range s.registry.Definitions() {
		if def.Tester == "" {
			continue
		}
		if _, ok := registered[def.Tester]; !ok {
			registered[def.Tester] = struct{}{}
			missing = append(missing, def.Tester)
		}
	}
	sort.Strings(missing)
	return missing
}

// State returns the live snapshot, or nil before Initialize.
func (s *Store) State() *State {
	return s.state.Load()
}

// Update applies newValues.
//
// Only values that differ from the merged state are persisted, unless
// diffing is disabled. Null values and unregistered keys are ignored. The
// settings file is rewritten before the new state is published, and a
// restart is started afterwards when a changed key requires one. A failed
// write still applies the update in memory, forces a restart, and is
// returned wrapped in ErrPersistFailed alongside the result.
func (s *Store) Update(ctx context.Context, newValues EnvMap) (*UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load()
	if prev == nil {
		return nil, ErrNotInitialized
	}
	log := logging.Ctx(ctx)

	submitted, dropped := s.registry.Filter(newValues.Clone())
	if len(dropped) > 0 {
		log.Warn().Strs("keys", dropped).Msg("Ignoring unregistered settings in update")
	}

	diff := Diff(prev.current, submitted, s.flags.DiffDisabled)
	if len(diff) == 0 {
		metrics.RecordSettingsUpdate(0, nil)
		log.Debug().Msg("Settings update contained no changes")
		return &UpdateResult{State: prev}, nil
	}

	changed := diff.Keys()
	restart := s.registry.RequiresRestart(changed)

	fileEnv := prev.settingsFileEnv.Clone()
	for k, v := range diff {
		fileEnv[k] = v
	}

	var persistErr error
	if err := s.files.Write(fileEnv); err != nil {
		persistErr = fmt.Errorf("%w: %w", ErrPersistFailed, err)
		restart = true
		log.Error().Err(err).Str("path", s.files.Path()).Msg("Failed to write settings file, forcing restart")
	}

	next := newState(s.registry, prev.initialEnv, prev.dotenvEnv, fileEnv)
	if err := Publish(s.env, next.current); err != nil {
		log.Error().Err(err).Msg("Failed to publish settings to environment")
	}
	s.state.Store(next)

	metrics.RecordSettingsUpdate(len(changed), persistErr)
	log.Info().Strs("keys", changed).Bool("restart", restart).Msg("Settings updated")

	if restart {
		s.restarter.RequestRestart()
	}

	return &UpdateResult{State: next, Changed: changed, RestartScheduled: restart}, persistErr
}

// Test runs the testers of every key in testValues against the persisted
// settings-file map overlaid with testValues. Each tester runs once no
// matter how many of its keys were submitted. Process environment values
// are not consulted.
func (s *Store) Test(ctx context.Context, testValues EnvMap) (map[string]TestResult, error) {
	st := s.state.Load()
	if st == nil {
		return nil, ErrNotInitialized
	}

	candidate := st.settingsFileEnv.Clone()
	for k, v := range testValues {
		if v != nil {
			candidate[k] = Str(*v)
		}
	}

	groups := testerGroups(s.registry, testValues.Keys())
	if len(groups) == 0 {
		return map[string]TestResult{}, nil
	}

	logging.Ctx(ctx).Debug().Strs("testers", groups).Msg("Running settings testers")
	return runTesters(ctx, s.testers, groups, NewValues(candidate, s.registry), s.testTimeout), nil
}

// logOnlyRestarter is used when no coordinator is wired.
type logOnlyRestarter struct{}

func (logOnlyRestarter) RequestRestart() {
	logging.Warn().Msg("Restart required but no restart coordinator configured, restart manually to apply settings")
}
