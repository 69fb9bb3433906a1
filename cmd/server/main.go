// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package main is the entry point for the Kinograph server.
//
// Kinograph serves a movie catalog and item-item collaborative
// filtering recommendations over HTTP. Startup proceeds in a fixed
// order:
//
//  1. Configuration is loaded via Koanf (defaults, optional YAML
//     file, KINOGRAPH_* environment variables).
//  2. Zerolog is initialized from the logging configuration.
//  3. The DuckDB catalog database is opened and migrated.
//  4. If an import CSV is configured, it is loaded before the model
//     trains so first boot starts with a populated catalog.
//  5. The recommendation engine restores its persisted model or
//     trains a fresh one from the rating feed, then (optionally)
//     begins periodic background retraining.
//  6. The chi HTTP server starts and runs until SIGINT or SIGTERM,
//     then shuts down gracefully within the configured timeout.
//
// Example usage:
//
//	KINOGRAPH_DATABASE_PATH=data/kinograph.db \
//	KINOGRAPH_IMPORT_CSV_PATH=data/data.csv \
//	KINOGRAPH_SERVER_PORT=8000 ./kinograph
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/kinograph/internal/api"
	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/database"
	"github.com/tomtom215/kinograph/internal/importer"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/recommend"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("listen", cfg.ListenAddr()).
		Msg("Starting Kinograph")

	db, err := database.New(database.Config{
		Path:      cfg.Database.Path,
		MaxMemory: cfg.Database.MaxMemory,
		Threads:   cfg.Database.Threads,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Root context canceled on SIGINT/SIGTERM; stops background
	// retraining and gates the HTTP shutdown below.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	imp := importer.New(db, cfg.Import)
	if cfg.Import.CSVPath != "" {
		// Import before the engine trains so the first model sees
		// the full catalog. A bad file is not fatal: the server can
		// still serve whatever the database already holds.
		if _, err := imp.Run(ctx, ""); err != nil {
			logging.Error().Err(err).Str("file", cfg.Import.CSVPath).Msg("Startup import failed")
		}
	}

	store := recommend.NewFileStore(cfg.Recommend.ModelPath)
	engine, err := recommend.NewEngine(cfg.Recommend, db, store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	if err := engine.Load(ctx); err != nil {
		// Typically means the catalog has too few ratings yet. The
		// server still starts; recommendation endpoints return 503
		// until a retrain succeeds.
		logging.Warn().Err(err).Msg("Recommendation model unavailable at startup")
	}
	engine.StartPeriodicRetrain(ctx)

	handler := api.NewHandler(db, engine, imp, cfg)
	router := api.NewRouter(handler, cfg)

	srv := newHTTPServer(cfg, router.Setup())

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newHTTPServer builds the server with read-side timeouts only.
// WriteTimeout stays unset because POST /recommend/train responds
// after a full synchronous training run, which on a large catalog can
// outlast any fixed per-response deadline; slow and idle clients are
// still bounded by the read and idle timeouts.
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
}
