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

// ratingRequest is the body of POST and PUT /api/v1/ratings. The value
// must sit on the explicit 0.5-5.0 half-step scale.
type ratingRequest struct {
	UserID  int     `json:"user_id" validate:"required,min=1"`
	MovieID int     `json:"movie_id" validate:"required,min=1"`
	Value   float64 `json:"value" validate:"required,min=0.5,max=5,halfstep"`
}

// ratingKeyRequest is the body of DELETE /api/v1/ratings.
type ratingKeyRequest struct {
	UserID  int `json:"user_id" validate:"required,min=1"`
	MovieID int `json:"movie_id" validate:"required,min=1"`
}

// RatingUpsert handles POST and PUT /api/v1/ratings
// Writes a rating, replacing any previous rating the user gave the
// movie. Both the user and the movie must already exist.
func (h *Handler) RatingUpsert(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var req ratingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	rating := models.Rating{UserID: req.UserID, MovieID: req.MovieID, Value: req.Value}
	if err := h.db.UpsertRating(ctx, rating); err != nil {
		logging.Error().Err(err).
			Int("user_id", req.UserID).
			Int("movie_id", req.MovieID).
			Msg("Failed to upsert rating")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, rating, queryStart)
}

// RatingList handles GET /api/v1/ratings
func (h *Handler) RatingList(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	ratings, err := h.db.ListRatings(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list ratings")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, ratings, queryStart)
}

// RatingDelete handles DELETE /api/v1/ratings
// Removes a single (user, movie) rating.
func (h *Handler) RatingDelete(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var req ratingKeyRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.DeleteRating(ctx, req.UserID, req.MovieID); err != nil {
		logging.Error().Err(err).
			Int("user_id", req.UserID).
			Int("movie_id", req.MovieID).
			Msg("Failed to delete rating")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, req, queryStart)
}
