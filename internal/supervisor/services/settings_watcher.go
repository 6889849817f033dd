// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/knadh/koanf/providers/file"

	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/metrics"
	"github.com/tomtom215/nmsconsole/internal/settings"
)

// DefaultSettleDelay is how long the watcher waits after the last file
// event before comparing. The store writes the file before it publishes the
// new state, so comparing immediately could report its own write.
const DefaultSettleDelay = 500 * time.Millisecond

// DefaultPollInterval is how often a missing settings directory is checked.
const DefaultPollInterval = 2 * time.Second

var errFileRemoved = errors.New("settings file removed")

// SettingsSource is the part of *settings.Store the watcher reads.
type SettingsSource interface {
	Registry() *settings.Registry
	FileStore() settings.FileStore
	State() *settings.State
}

// SettingsWatcher watches the settings file and reports edits made outside
// the console. Drift is logged and counted, never applied: the file is read
// again on the next restart.
type SettingsWatcher struct {
	src          SettingsSource
	settleDelay  time.Duration
	pollInterval time.Duration

	// onDrift is called with the drifted keys after logging. Tests only.
	onDrift func(keys []string)
}

// NewSettingsWatcher creates a watcher for src's settings file.
func NewSettingsWatcher(src SettingsSource) *SettingsWatcher {
	return &SettingsWatcher{
		src:          src,
		settleDelay:  DefaultSettleDelay,
		pollInterval: DefaultPollInterval,
	}
}

// Serve implements suture.Service. The file location is resolved once per
// run. A missing file is the normal state before the first save: the
// watcher waits for it to appear, and goes back to waiting when it is
// removed.
func (w *SettingsWatcher) Serve(ctx context.Context) error {
	log := logging.WithComponent("settings-watcher")
	path := filepath.Clean(w.src.FileStore().Path())

	for {
		if err := w.waitForFile(ctx, path); err != nil {
			return err
		}

		err := w.watchFile(ctx, path)
		if !errors.Is(err, errFileRemoved) {
			return err
		}
		log.Warn().Str("path", path).Msg("Settings file was removed, waiting for it to reappear")
		w.check()
	}
}

// watchFile follows writes to an existing file until ctx ends or the file
// goes away, which is reported as errFileRemoved. The file is compared once
// when the watch starts.
func (w *SettingsWatcher) watchFile(ctx context.Context, path string) error {
	log := logging.WithComponent("settings-watcher")

	changed := make(chan struct{}, 1)
	failed := make(chan error, 1)
	provider := file.Provider(path)
	err := provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			select {
			case failed <- err:
			default:
			}
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		if !fileExists(path) {
			return errFileRemoved
		}
		return fmt.Errorf("watch settings file %s: %w", path, err)
	}
	defer func() {
		if err := provider.Unwatch(); err != nil {
			log.Debug().Err(err).Msg("Failed to stop settings file watch")
		}
	}()

	log.Info().Str("path", path).Msg("Watching settings file for external changes")

	// The first comparison covers edits made before the watch started.
	settle := time.NewTimer(w.settleDelay)
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-failed:
			if !fileExists(path) {
				return errFileRemoved
			}
			return fmt.Errorf("settings file watch ended: %w", err)
		case <-changed:
			settle.Reset(w.settleDelay)
		case <-settle.C:
			w.check()
		}
	}
}

// waitForFile returns once path exists. The parent directory is watched
// for the file's creation; when the directory itself is missing it is
// polled instead.
func (w *SettingsWatcher) waitForFile(ctx context.Context, path string) error {
	if fileExists(path) {
		return nil
	}
	log := logging.WithComponent("settings-watcher")

	dirWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch settings directory: %w", err)
	}
	defer dirWatch.Close()

	var poll <-chan time.Time
	if err := dirWatch.Add(filepath.Dir(path)); err != nil {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		poll = ticker.C
	}
	log.Info().Str("path", path).Msg("Settings file does not exist yet, waiting for it")

	for !fileExists(path) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-dirWatch.Events:
			if !ok {
				return errors.New("settings directory watch closed")
			}
		case err, ok := <-dirWatch.Errors:
			if !ok {
				return errors.New("settings directory watch closed")
			}
			return fmt.Errorf("watch settings directory: %w", err)
		case <-poll:
		}
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// check compares the file on disk with the persisted map.
func (w *SettingsWatcher) check() {
	st := w.src.State()
	if st == nil {
		return
	}
	store := w.src.FileStore()
	persisted := st.SettingsFileEnv()

	onDisk, err := store.Read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		onDisk = settings.EnvMap{}
	case err != nil:
		logging.Warn().Err(err).Str("path", store.Path()).Msg("Settings file changed and is unreadable")
		metrics.SettingsFileDrift.Inc()
		return
	}

	drifted := DriftedKeys(persisted, onDisk.Only(w.src.Registry().Keys()))
	if len(drifted) == 0 {
		return
	}

	metrics.SettingsFileDrift.Inc()
	logging.Warn().
		Str("path", store.Path()).
		Strs("keys", drifted).
		Msg("Settings file was changed outside the console, restart to apply or save from the console to overwrite")
	if w.onDrift != nil {
		w.onDrift(drifted)
	}
}

// DriftedKeys returns the sorted keys whose value differs between a and b.
// Null and missing entries are equal.
func DriftedKeys(a, b settings.EnvMap) []string {
	union := make(settings.EnvMap, len(a)+len(b))
	for k := range a {
		union[k] = nil
	}
	for k := range b {
		union[k] = nil
	}

	var drifted []string
	for _, k := range union.Keys() {
		av, aok := a.Get(k)
		bv, bok := b.Get(k)
		if aok != bok || av != bv {
			drifted = append(drifted, k)
		}
	}
	return drifted
}

// String implements fmt.Stringer for supervisor logs.
func (w *SettingsWatcher) String() string {
	return "settings-watcher"
}
