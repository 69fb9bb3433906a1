// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newTestRecommender(cfg Config) *Recommender {
	return NewRecommender(cfg, zerolog.Nop())
}

func TestRecommend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinK = 2
	r := newTestRecommender(cfg)
	m := fixtureModel()

	t.Run("ranks unrated movies by predicted rating", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}

		// User 1 has rated 10, 20, 30; candidates are 40, 50, 60.
		// Estimates: 50 -> 4.62 (weighted), 60 -> 3.5 (item mean),
		// 40 -> 3.0 (item mean, exactly at the floor).
		wantIDs := []int{50, 60, 40}
		if len(recs) != len(wantIDs) {
			t.Fatalf("got %d recommendations, want %d", len(recs), len(wantIDs))
		}
		for i, want := range wantIDs {
			if recs[i].MovieID != want {
				t.Errorf("recs[%d].MovieID = %d, want %d", i, recs[i].MovieID, want)
			}
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].PredictedRating > recs[i-1].PredictedRating {
				t.Errorf("recommendations not in descending order at %d", i)
			}
		}
	})

	t.Run("never recommends rated movies", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		rated := m.Matrix[1]
		for _, rec := range recs {
			if _, ok := rated[rec.MovieID]; ok {
				t.Errorf("movie %d already rated by user", rec.MovieID)
			}
		}
	})

	t.Run("rounds predicted rating to two decimals", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 1)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		// (0.8*5.0 + 0.5*4.0) / 1.3 = 4.6153... -> 4.62
		if recs[0].PredictedRating != 4.62 {
			t.Errorf("PredictedRating = %g, want 4.62", recs[0].PredictedRating)
		}
	})

	t.Run("quality floor drops weak candidates", func(t *testing.T) {
		strict := cfg
		strict.QualityFloor = 4.0
		recs, err := newTestRecommender(strict).Recommend(m, 1, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 1 || recs[0].MovieID != 50 {
			t.Errorf("recs = %v, want only movie 50", recs)
		}
	})

	t.Run("topN bounds results", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 2)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 2 {
			t.Errorf("got %d recommendations, want 2", len(recs))
		}
	})

	t.Run("non-positive topN returns empty", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 0)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("got %d recommendations, want 0", len(recs))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := r.Recommend(m, 999, 5); !errors.Is(err, ErrUnknownUser) {
			t.Errorf("err = %v, want ErrUnknownUser", err)
		}
	})

	t.Run("user with empty history degrades to fallback estimates", func(t *testing.T) {
		empty := fixtureModel()
		empty.Matrix[5] = map[int]float64{}

		recs, err := r.Recommend(empty, 5, 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		for _, rec := range recs {
			if rec.PredictedRating < RatingMin || rec.PredictedRating > RatingMax {
				t.Errorf("movie %d rating %g outside scale", rec.MovieID, rec.PredictedRating)
			}
		}
	})
}

func TestRecommendTieOrdering(t *testing.T) {
	m := &TrainedModel{
		Matrix:     RatingMatrix{1: {1: 5.0}},
		Similarity: map[int]map[int]float64{},
		ItemMeans:  map[int]float64{1: 5.0, 2: 4.0, 3: 4.0, 4: 4.0},
		GlobalMean: 4.0,
		Movies: map[int]MovieInfo{
			1: {ID: 1, Title: "A"},
			2: {ID: 2, Title: "B"},
			3: {ID: 3, Title: "C"},
			4: {ID: 4, Title: "D"},
		},
	}
	m.finalize()

	r := newTestRecommender(DefaultConfig())

	// All candidates fall back to the same item mean; ties must come
	// out in ascending movie ID order, truncation included.
	recs, err := r.Recommend(m, 1, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 2 || recs[0].MovieID != 2 || recs[1].MovieID != 3 {
		t.Errorf("tie ordering broken: %v", recs)
	}
}

func TestExplain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinK = 2
	r := newTestRecommender(cfg)
	m := fixtureModel()

	t.Run("multiple similar liked movies", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 1)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		want := "Recommended because you liked similar movies such as The Matrix (rating: 5.0) and Blade Runner (rating: 4.0)."
		if recs[0].Explanation != want {
			t.Errorf("Explanation = %q, want %q", recs[0].Explanation, want)
		}
	})

	t.Run("single similar liked movie", func(t *testing.T) {
		// User 3 liked only The Matrix; sim(50, 10) = 0.8.
		recs, err := r.Recommend(m, 3, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		var got string
		for _, rec := range recs {
			if rec.MovieID == 50 {
				got = rec.Explanation
			}
		}
		want := "Recommended because you liked The Matrix (rating: 5.0)."
		if got != want {
			t.Errorf("Explanation = %q, want %q", got, want)
		}
	})

	t.Run("single similar liked movie without metadata", func(t *testing.T) {
		// Same shape as above, but the liked movie's metadata is
		// gone from the model; the placeholder title stands in.
		m2 := fixtureModel()
		delete(m2.Movies, 10)
		m2.finalize()

		recs, err := r.Recommend(m2, 3, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		var got string
		for _, rec := range recs {
			if rec.MovieID == 50 {
				got = rec.Explanation
			}
		}
		want := "Recommended because you liked a similar movie (rating: 5.0)."
		if got != want {
			t.Errorf("Explanation = %q, want %q", got, want)
		}
	})

	t.Run("genre overlap when no similar liked movie", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		var got string
		for _, rec := range recs {
			if rec.MovieID == 40 {
				got = rec.Explanation
			}
		}
		// Heat is Action|Crime; user 1's liked movies feature Action.
		want := "Recommended because it features genres you often enjoy: Action."
		if got != want {
			t.Errorf("Explanation = %q, want %q", got, want)
		}
	})

	t.Run("generic fallback", func(t *testing.T) {
		recs, err := r.Recommend(m, 1, 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		var got string
		for _, rec := range recs {
			if rec.MovieID == 60 {
				got = rec.Explanation
			}
		}
		// Grizzly Man shares no similarity edge and no genre with
		// the user's liked movies.
		if got != explainGeneric {
			t.Errorf("Explanation = %q, want %q", got, explainGeneric)
		}
	})
}
