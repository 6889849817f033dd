// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/tomtom215/nmsconsole/internal/api"
	"github.com/tomtom215/nmsconsole/internal/config"
	"github.com/tomtom215/nmsconsole/internal/logging"
	"github.com/tomtom215/nmsconsole/internal/settings"
	"github.com/tomtom215/nmsconsole/internal/settings/testers"
	"github.com/tomtom215/nmsconsole/internal/supervisor"
	"github.com/tomtom215/nmsconsole/internal/supervisor/services"
)

// restartExitCode tells the launcher that the process stopped to pick up
// new settings. EX_TEMPFAIL from sysexits.h.
const restartExitCode = 75

func main() {
	os.Exit(run())
}

func run() int {
	engineCfg, err := config.LoadEngineConfig()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load engine configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry := config.NewRegistry()

	var files settings.FileStore = settings.NewJSONFileStore(settings.PathFromEnv("NMS_SETTINGS_FILE", "settings.json"))
	if engineCfg.SettingsKey != "" {
		cipher, err := settings.NewSecretCipher(engineCfg.SettingsKey)
		if err != nil {
			logging.Error().Err(err).Msg("Invalid settings encryption key")
			return 1
		}
		files = settings.NewSealedFileStore(files, cipher, registry)
		logging.Info().Msg("Secret settings are encrypted at rest")
	}

	var restarting atomic.Bool
	restarter := settings.NewRestartCoordinator(
		settings.NewOSSignalChannel(func() {
			restarting.Store(true)
			logging.Info().Msg("Restart signal forwarded, shutting down")
			cancel()
		}),
		engineCfg.RestartDelay,
	)

	store := settings.NewStore(registry,
		settings.WithFileStore(files),
		settings.WithFlags(engineCfg.Flags()),
		settings.WithTesters(testers.Default()),
		settings.WithTestTimeout(engineCfg.TestTimeout),
		settings.WithRestarter(restarter),
	)

	st, err := store.Initialize(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize settings")
		return 1
	}
	logging.Init(config.Logging(st.Values()))
	config.ApplyLive(st)

	flags := engineCfg.Flags()
	logging.Info().
		Int("settings", registry.Len()).
		Bool("settings_file", flags.SettingsFileEnabled).
		Str("settings_path", files.Path()).
		Bool("dotenv", !flags.DotenvDisabled).
		Msg("Settings loaded")

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = engineCfg.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	if flags.SettingsFileEnabled {
		tree.AddSettingsService(services.NewSettingsWatcher(store))
	}

	serverCfg := config.Server(st.Values())
	routerCfg := api.DefaultChiMiddlewareConfig()
	routerCfg.CORSAllowedOrigins = serverCfg.CORSOrigins
	routerCfg.TestRateLimit = serverCfg.TestRateLimit
	handler := api.NewHandler(store, config.ApplyLive)
	handler.ConfigureFeatures(config.FeatureFlags)
	router := api.NewRouter(handler, routerCfg)

	server := &http.Server{
		Addr:              serverCfg.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Connectivity tests can run for the full tester timeout.
		WriteTimeout: engineCfg.TestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, engineCfg.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	if restarting.Load() {
		logging.Info().Int("exit_code", restartExitCode).Msg("Exiting for restart")
		return restartExitCode
	}
	logging.Info().Msg("NMS Console stopped gracefully")
	return 0
}
