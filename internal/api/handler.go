// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"time"

	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/database"
	"github.com/tomtom215/kinograph/internal/importer"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// Handler holds dependencies for all HTTP handlers.
type Handler struct {
	db        *database.DB
	engine    *recommend.Engine
	importer  *importer.Importer
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler with the given dependencies. The
// importer may be nil when no CSV paths are configured; the import
// endpoint then reports a validation error.
func NewHandler(db *database.DB, engine *recommend.Engine, imp *importer.Importer, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		importer:  imp,
		config:    cfg,
		startTime: time.Now(),
	}
}
