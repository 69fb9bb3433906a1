// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metrics"
	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// nonPersonalizedExplanation is returned for users with no rating
// history, alongside a fixed middle-of-scale estimate.
const (
	nonPersonalizedExplanation = "This is a general, non-personalized recommendation. Rate more movies to get personalized recommendations."
	nonPersonalizedRating      = 3.5
	nonPersonalizedCount       = 5
)

// RecommendGet handles GET /api/v1/recommend/{userID}
//
// Returns the user's rating history plus a ranked recommendation list.
// A known user with no history (or one who only rated after the last
// training run) gets a non-personalized sample of the catalog instead
// of a ranked list.
func (h *Handler) RecommendGet(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID", err)
		return
	}

	topN := getIntParam(r, "top_n", h.config.API.DefaultTopN)
	if topN < 1 {
		topN = h.config.API.DefaultTopN
	}
	if topN > h.config.API.MaxTopN {
		topN = h.config.API.MaxTopN
	}

	exists, err := h.db.UserExists(ctx, userID)
	if err != nil {
		logging.Error().Err(err).Int("user_id", userID).Msg("Failed to check user")
		respondDomainError(w, err)
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	history, err := h.db.GetRatingsByUser(ctx, userID)
	if err != nil {
		logging.Error().Err(err).Int("user_id", userID).Msg("Failed to get rating history")
		respondDomainError(w, err)
		return
	}

	if len(history) == 0 {
		h.respondNonPersonalized(w, r, userID, queryStart)
		return
	}

	recs, err := h.engine.Recommend(userID, topN)
	if errors.Is(err, recommend.ErrUnknownUser) {
		// Rated for the first time after the last training run; the
		// model does not know them yet.
		metrics.RecordRecommendation("unknown_user", time.Since(queryStart))
		h.respondNonPersonalizedWithHistory(w, r, userID, history, queryStart)
		return
	}
	if err != nil {
		if errors.Is(err, recommend.ErrModelNotReady) {
			metrics.RecordRecommendation("not_ready", time.Since(queryStart))
		}
		logging.Error().Err(err).Int("user_id", userID).Msg("Failed to build recommendations")
		respondDomainError(w, err)
		return
	}

	results := make([]models.MovieRecommendation, 0, len(recs))
	for _, rec := range recs {
		results = append(results, models.MovieRecommendation{
			MovieID:         rec.MovieID,
			Title:           rec.Title,
			Genres:          rec.Genres,
			PredictedRating: rec.PredictedRating,
			Explanation:     rec.Explanation,
			NonPersonalized: false,
		})
	}

	metrics.RecordRecommendation("personalized", time.Since(queryStart))
	respondSuccess(w, http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		RatingsHistory:  history,
		Recommendations: results,
		Personalized:    true,
	}, queryStart)
}

// respondNonPersonalized serves the zero-history fallback: the first
// few catalog movies with a fixed middle-of-scale estimate.
func (h *Handler) respondNonPersonalized(w http.ResponseWriter, r *http.Request, userID int, queryStart time.Time) {
	metrics.RecordRecommendation("non_personalized", time.Since(queryStart))
	h.respondNonPersonalizedWithHistory(w, r, userID, []models.RatingDetail{}, queryStart)
}

func (h *Handler) respondNonPersonalizedWithHistory(w http.ResponseWriter, r *http.Request, userID int, history []models.RatingDetail, queryStart time.Time) {
	ctx := r.Context()

	movies, _, err := h.db.ListMovies(ctx, 1, nonPersonalizedCount)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to sample catalog")
		respondDomainError(w, err)
		return
	}

	recs := make([]models.MovieRecommendation, 0, len(movies))
	for _, movie := range movies {
		genres, err := h.db.GetMovieGenres(ctx, movie.ID)
		if err != nil {
			logging.Error().Err(err).Int("movie_id", movie.ID).Msg("Failed to get movie genres")
			respondDomainError(w, err)
			return
		}
		recs = append(recs, models.MovieRecommendation{
			MovieID:         movie.ID,
			Title:           movie.Title,
			Genres:          joinGenres(genres),
			PredictedRating: nonPersonalizedRating,
			Explanation:     nonPersonalizedExplanation,
			NonPersonalized: true,
		})
	}

	respondSuccess(w, http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		RatingsHistory:  history,
		Recommendations: recs,
		Personalized:    false,
	}, queryStart)
}

// PredictGet handles GET /api/v1/predict/{userID}/{movieID}
// Estimates the rating the user would give the movie.
func (h *Handler) PredictGet(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID", err)
		return
	}
	movieID, err := pathInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie ID", err)
		return
	}

	exists, err := h.db.UserExists(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}
	if _, err := h.db.GetMovie(ctx, movieID); err != nil {
		respondDomainError(w, err)
		return
	}

	pred, err := h.engine.Predict(userID, movieID)
	if err != nil {
		logging.Error().Err(err).
			Int("user_id", userID).
			Int("movie_id", movieID).
			Msg("Failed to predict rating")
		respondDomainError(w, err)
		return
	}
	metrics.RecordPrediction(pred.Fallback)

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id":    userID,
		"movie_id":   movieID,
		"prediction": pred,
	}, queryStart)
}

// TrainPost handles POST /api/v1/recommend/train
// Rebuilds the model from the current rating feed and publishes it
// atomically. Responds 409 when a training run is already active.
func (h *Handler) TrainPost(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()

	err := h.engine.Retrain(r.Context())
	if errors.Is(err, recommend.ErrTrainingInProgress) {
		metrics.RecordTrainingBusy()
		respondDomainError(w, err)
		return
	}

	status := h.engine.Status()
	metrics.RecordTraining(time.Since(queryStart), status.RatingCount, err)
	if err != nil {
		logging.Error().Err(err).Msg("Training failed")
		respondDomainError(w, err)
		return
	}
	metrics.SetModelInfo(status.ModelVersion, status.UserCount, status.MovieCount)

	respondSuccess(w, http.StatusOK, status, queryStart)
}

// TrainStatus handles GET /api/v1/recommend/train/status
func (h *Handler) TrainStatus(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	respondSuccess(w, http.StatusOK, h.engine.Status(), queryStart)
}

// joinGenres renders a genre list the way the rating feed does, with
// the pipe separator.
func joinGenres(genres []string) string {
	return strings.Join(genres, recommend.GenreSeparator)
}
