// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/kinograph/internal/importer"
	"github.com/tomtom215/kinograph/internal/logging"
)

// importRequest is the body of POST /api/v1/import. An empty path
// falls back to the configured CSV.
type importRequest struct {
	Path string `json:"path"`
}

// ImportPost handles POST /api/v1/import
// Runs the CSV bulk loader synchronously and returns its counters.
// Existing catalog entries are never overwritten.
func (h *Handler) ImportPost(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	if h.importer == nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"CSV import is not configured", nil)
		return
	}

	var req importRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}

	stats, err := h.importer.Run(ctx, req.Path)
	if err != nil {
		if errors.Is(err, importer.ErrImportInProgress) {
			respondError(w, http.StatusConflict, "CONFLICT", "Import is already in progress", nil)
			return
		}
		if errors.Is(err, importer.ErrNoFileConfigured) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"No CSV path configured or provided", nil)
			return
		}
		logging.Error().Err(err).Str("path", sanitizeLogValue(req.Path)).Msg("Import failed")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Import failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, stats, queryStart)
}

// FeedGet handles GET /api/v1/feed
// Dumps the denormalized rating feed the trainer consumes: one row per
// rating joined with the movie's title and pipe-joined genres.
func (h *Handler) FeedGet(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	feed, err := h.db.FetchRatingFeed(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch rating feed")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"rows":  feed,
		"count": len(feed),
	}, queryStart)
}
