// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/models"
)

// genreCreateRequest is the body of POST /api/v1/genres.
type genreCreateRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

// GenreCreate handles POST /api/v1/genres
// Registers a genre name. Creating an existing name is a no-op.
func (h *Handler) GenreCreate(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var req genreCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.CreateGenre(ctx, req.Name); err != nil {
		logging.Error().Err(err).Str("genre", sanitizeLogValue(req.Name)).Msg("Failed to create genre")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]string{"name": req.Name}, queryStart)
}

// GenreList handles GET /api/v1/genres
func (h *Handler) GenreList(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	genres, err := h.db.ListGenres(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list genres")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, genres, queryStart)
}

// GenreDelete handles DELETE /api/v1/genres/{genre}
// Removes the genre and every movie link that references it.
func (h *Handler) GenreDelete(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	name := r.PathValue("genre")
	if name == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing genre name", nil)
		return
	}

	if err := h.db.DeleteGenre(ctx, name); err != nil {
		logging.Error().Err(err).Str("genre", sanitizeLogValue(name)).Msg("Failed to delete genre")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"deleted": name}, queryStart)
}

// MovieGenreCreate handles POST /api/v1/movie-genres
// Links a movie to a genre by name. Both must already exist.
func (h *Handler) MovieGenreCreate(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var link models.MovieGenre
	if err := decodeBody(r, &link); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&link); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.AddMovieGenre(ctx, link.MovieID, link.GenreName); err != nil {
		logging.Error().Err(err).
			Int("movie_id", link.MovieID).
			Str("genre", sanitizeLogValue(link.GenreName)).
			Msg("Failed to link movie genre")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, link, queryStart)
}

// MovieGenreList handles GET /api/v1/movie-genres
func (h *Handler) MovieGenreList(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	links, err := h.db.ListMovieGenres(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list movie genres")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, links, queryStart)
}

// MovieGenreDelete handles DELETE /api/v1/movie-genres
// Unlinks a movie from a genre. The pair comes in the request body.
func (h *Handler) MovieGenreDelete(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var link models.MovieGenre
	if err := decodeBody(r, &link); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&link); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.RemoveMovieGenre(ctx, link.MovieID, link.GenreName); err != nil {
		logging.Error().Err(err).
			Int("movie_id", link.MovieID).
			Str("genre", sanitizeLogValue(link.GenreName)).
			Msg("Failed to unlink movie genre")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, link, queryStart)
}
