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

// movieUpdateRequest is the body of PUT /api/v1/movies/{movieID}.
type movieUpdateRequest struct {
	Title string `json:"title" validate:"required,max=512"`
}

// movieDetail is a catalog entry joined with its genre names.
type movieDetail struct {
	models.Movie
	Genres []string `json:"genres"`
}

// movieListResponse pairs a movie page with pagination info.
type movieListResponse struct {
	Movies     []models.Movie        `json:"movies"`
	Pagination models.PaginationInfo `json:"pagination"`
}

// MovieCreate handles POST /api/v1/movies
func (h *Handler) MovieCreate(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var movie models.Movie
	if err := decodeBody(r, &movie); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&movie); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.CreateMovie(ctx, movie); err != nil {
		logging.Error().Err(err).Int("movie_id", movie.ID).Msg("Failed to create movie")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, movie, queryStart)
}

// MovieList handles GET /api/v1/movies
// Supports page and page_size query parameters.
func (h *Handler) MovieList(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	page := getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := getIntParam(r, "page_size", h.config.API.DefaultPageSize)
	if pageSize < 1 {
		pageSize = h.config.API.DefaultPageSize
	}
	if pageSize > h.config.API.MaxPageSize {
		pageSize = h.config.API.MaxPageSize
	}

	movies, total, err := h.db.ListMovies(ctx, page, pageSize)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list movies")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, movieListResponse{
		Movies: movies,
		Pagination: models.PaginationInfo{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: total,
			HasMore:    page*pageSize < total,
		},
	}, queryStart)
}

// MovieGet handles GET /api/v1/movies/{movieID}
// Returns the movie with its genre names.
func (h *Handler) MovieGet(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie ID", err)
		return
	}

	movie, err := h.db.GetMovie(ctx, movieID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	genres, err := h.db.GetMovieGenres(ctx, movieID)
	if err != nil {
		logging.Error().Err(err).Int("movie_id", movieID).Msg("Failed to get movie genres")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, movieDetail{Movie: movie, Genres: genres}, queryStart)
}

// MovieUpdate handles PUT /api/v1/movies/{movieID}
// Renames a movie.
func (h *Handler) MovieUpdate(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie ID", err)
		return
	}

	var req movieUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.UpdateMovieTitle(ctx, movieID, req.Title); err != nil {
		logging.Error().Err(err).Int("movie_id", movieID).Msg("Failed to update movie")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, models.Movie{ID: movieID, Title: req.Title}, queryStart)
}

// MovieDelete handles DELETE /api/v1/movies/{movieID}
// Removes the movie, its genre links, and its ratings.
func (h *Handler) MovieDelete(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie ID", err)
		return
	}

	if err := h.db.DeleteMovie(ctx, movieID); err != nil {
		logging.Error().Err(err).Int("movie_id", movieID).Msg("Failed to delete movie")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]int{"deleted": movieID}, queryStart)
}
