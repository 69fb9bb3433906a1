// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Recommender ranks unrated movies for a user and attaches an
// explanation to each result. Safe for concurrent use against an
// immutable model.
type Recommender struct {
	cfg       Config
	predictor *Predictor
	logger    zerolog.Logger
}

// NewRecommender creates a recommender sharing the predictor's tuning.
func NewRecommender(cfg Config, logger zerolog.Logger) *Recommender {
	return &Recommender{
		cfg:       cfg,
		predictor: NewPredictor(cfg),
		logger:    logger.With().Str("component", "recommender").Logger(),
	}
}

// Recommend returns up to topN movies the user has not rated, ordered
// by predicted rating descending. Candidates below the quality floor
// are dropped, so fewer than topN results is normal. Ties keep
// ascending movie ID order, which makes output stable across calls
// against the same model.
func (r *Recommender) Recommend(m *TrainedModel, userID, topN int) ([]Recommendation, error) {
	ratings, ok := m.Matrix[userID]
	if !ok {
		return nil, ErrUnknownUser
	}
	if topN <= 0 {
		return []Recommendation{}, nil
	}

	rated := sortedKeys(ratings)

	candidates := make([]int, 0, len(m.Movies))
	for movieID := range m.Movies {
		if _, seen := ratings[movieID]; !seen {
			candidates = append(candidates, movieID)
		}
	}
	sort.Ints(candidates)

	sel := newTopK(topN)
	for _, movieID := range candidates {
		pred := r.predictor.predict(m, rated, ratings, movieID)
		if pred.Estimate < r.cfg.QualityFloor {
			continue
		}
		sel.Add(movieID, pred.Estimate)
	}

	liked := r.likedMovies(rated, ratings)

	picked := sel.Sorted()
	results := make([]Recommendation, 0, len(picked))
	for _, s := range picked {
		info := m.Movies[s.id]
		results = append(results, Recommendation{
			MovieID:         s.id,
			Title:           info.Title,
			Genres:          info.Genres,
			PredictedRating: math.Round(s.score*100) / 100,
			Explanation:     r.explain(m, s.id, liked, ratings),
		})
	}
	return results, nil
}

// likedMovie pairs a liked movie with the rating the user gave it.
type likedMovie struct {
	id     int
	rating float64
}

// likedMovies filters the user's history down to movies rated at or
// above the liked threshold, in ascending ID order.
func (r *Recommender) likedMovies(rated []int, ratings map[int]float64) []likedMovie {
	liked := make([]likedMovie, 0, len(rated))
	for _, id := range rated {
		if ratings[id] >= r.cfg.LikedThreshold {
			liked = append(liked, likedMovie{id: id, rating: ratings[id]})
		}
	}
	return liked
}
