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

// UserCreate handles POST /api/v1/users
// Registers a user ID. Creating an existing ID is a no-op.
func (h *Handler) UserCreate(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	var user models.User
	if err := decodeBody(r, &user); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&user); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.CreateUser(ctx, user.ID); err != nil {
		logging.Error().Err(err).Int("user_id", user.ID).Msg("Failed to create user")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, user, queryStart)
}

// UserList handles GET /api/v1/users
func (h *Handler) UserList(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list users")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, users, queryStart)
}

// UserNextID handles GET /api/v1/users/next-id
// Returns the lowest unused user ID, for clients that register users
// sequentially.
func (h *Handler) UserNextID(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	nextID, err := h.db.NextUserID(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to compute next user ID")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]int{"next_id": nextID}, queryStart)
}

// UserDelete handles DELETE /api/v1/users/{userID}
// Removes the user and all of their ratings.
func (h *Handler) UserDelete(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID", err)
		return
	}

	if err := h.db.DeleteUser(ctx, userID); err != nil {
		logging.Error().Err(err).Int("user_id", userID).Msg("Failed to delete user")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]int{"deleted": userID}, queryStart)
}

// UserRatings handles GET /api/v1/users/{userID}/ratings
// Returns the user's rating history joined with movie titles. An empty
// history is a valid response, not an error.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID", err)
		return
	}

	ratings, err := h.db.GetRatingsByUser(ctx, userID)
	if err != nil {
		logging.Error().Err(err).Int("user_id", userID).Msg("Failed to get user ratings")
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, ratings, queryStart)
}
