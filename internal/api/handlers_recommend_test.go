// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

func TestRecommendEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("personalized for a user with history", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/1", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, error = %+v", code, env.Error)
		}

		var resp models.RecommendationResponse
		decodeData(t, env, &resp)
		if resp.UserID != 1 {
			t.Errorf("user_id = %d", resp.UserID)
		}
		if !resp.Personalized {
			t.Error("Personalized = false, want true")
		}
		if len(resp.RatingsHistory) != 3 {
			t.Errorf("history = %v, want 3 entries", resp.RatingsHistory)
		}
		for _, rec := range resp.Recommendations {
			if rec.NonPersonalized {
				t.Errorf("recommendation %d flagged non-personalized", rec.MovieID)
			}
			if rec.PredictedRating < 0.5 || rec.PredictedRating > 5.0 {
				t.Errorf("predicted rating %g out of range", rec.PredictedRating)
			}
			if rec.Explanation == "" {
				t.Errorf("recommendation %d has no explanation", rec.MovieID)
			}
			// User 1 rated movies 10, 20 and 30 already.
			for _, rated := range []int{10, 20, 30} {
				if rec.MovieID == rated {
					t.Errorf("recommended already-rated movie %d", rated)
				}
			}
		}
	})

	t.Run("non-personalized for a silent user", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/4", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, error = %+v", code, env.Error)
		}

		var resp models.RecommendationResponse
		decodeData(t, env, &resp)
		if resp.Personalized {
			t.Error("Personalized = true, want false")
		}
		if len(resp.RatingsHistory) != 0 {
			t.Errorf("history = %v, want empty", resp.RatingsHistory)
		}
		if len(resp.Recommendations) != 4 { // whole seeded catalog, capped at 5
			t.Fatalf("recommendations = %d, want 4", len(resp.Recommendations))
		}
		for i, rec := range resp.Recommendations {
			if !rec.NonPersonalized {
				t.Errorf("recommendation %d not flagged non-personalized", rec.MovieID)
			}
			if rec.PredictedRating != 3.5 {
				t.Errorf("predicted rating = %g, want fixed 3.5", rec.PredictedRating)
			}
			if rec.Explanation != nonPersonalizedExplanation {
				t.Errorf("explanation = %q", rec.Explanation)
			}
			// Catalog sample comes back in ascending ID order.
			if i > 0 && rec.MovieID <= resp.Recommendations[i-1].MovieID {
				t.Errorf("sample order broken at %d", i)
			}
		}
		if resp.Recommendations[0].Genres != "Action|Sci-Fi" {
			t.Errorf("genres = %q", resp.Recommendations[0].Genres)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/99", nil)
		if code != http.StatusNotFound {
			t.Fatalf("status = %d", code)
		}
		if env.Error == nil || env.Error.Code != "NOT_FOUND" {
			t.Errorf("error = %+v", env.Error)
		}
	})

	t.Run("user rated after last training gets fallback", func(t *testing.T) {
		// User 8 is created and rates after the model was trained, so
		// the engine does not know them yet.
		if code, _ := doJSON(t, router, http.MethodPost, "/api/v1/users", models.User{ID: 8}); code != http.StatusCreated {
			t.Fatal("failed to create user")
		}
		if code, _ := doJSON(t, router, http.MethodPut, "/api/v1/ratings",
			models.Rating{UserID: 8, MovieID: 10, Value: 5.0}); code != http.StatusOK {
			t.Fatal("failed to rate")
		}

		code, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/8", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, error = %+v", code, env.Error)
		}
		var resp models.RecommendationResponse
		decodeData(t, env, &resp)
		if resp.Personalized {
			t.Error("Personalized = true for unmodeled user, want false")
		}
		if len(resp.RatingsHistory) != 1 {
			t.Errorf("history = %v, want the fresh rating", resp.RatingsHistory)
		}
	})

	t.Run("top_n is clamped", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/api/v1/recommend/1?top_n=10000", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		code, _ = doJSON(t, router, http.MethodGet, "/api/v1/recommend/1?top_n=-2", nil)
		if code != http.StatusOK {
			t.Fatalf("status with negative top_n = %d", code)
		}
	})
}

func TestPredictEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("estimate in range", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/predict/1/40", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d, error = %+v", code, env.Error)
		}
		var data struct {
			UserID     int                  `json:"user_id"`
			MovieID    int                  `json:"movie_id"`
			Prediction recommend.Prediction `json:"prediction"`
		}
		decodeData(t, env, &data)
		if data.UserID != 1 || data.MovieID != 40 {
			t.Errorf("ids = (%d, %d)", data.UserID, data.MovieID)
		}
		if data.Prediction.Estimate < 0.5 || data.Prediction.Estimate > 5.0 {
			t.Errorf("estimate %g out of range", data.Prediction.Estimate)
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/api/v1/predict/1/999", nil)
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/api/v1/predict/99/10", nil)
		if code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", code)
		}
	})
}

func TestTrainEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("status reports ready", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/train/status", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var status recommend.TrainingStatus
		decodeData(t, env, &status)
		if status.State != recommend.StateReady {
			t.Errorf("state = %q, want ready", status.State)
		}
		if status.RatingCount != 8 {
			t.Errorf("rating count = %d, want 8", status.RatingCount)
		}
	})

	t.Run("retrain bumps the model version", func(t *testing.T) {
		_, env := doJSON(t, router, http.MethodGet, "/api/v1/recommend/train/status", nil)
		var before recommend.TrainingStatus
		decodeData(t, env, &before)

		code, env := doJSON(t, router, http.MethodPost, "/api/v1/recommend/train", nil)
		if code != http.StatusOK {
			t.Fatalf("train status = %d, error = %+v", code, env.Error)
		}
		var after recommend.TrainingStatus
		decodeData(t, env, &after)
		if after.ModelVersion != before.ModelVersion+1 {
			t.Errorf("version = %d, want %d", after.ModelVersion, before.ModelVersion+1)
		}
		if after.State != recommend.StateReady {
			t.Errorf("state = %q", after.State)
		}
	})
}
