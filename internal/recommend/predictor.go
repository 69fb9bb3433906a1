// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"math"
	"sort"
)

// Predictor estimates a single user/movie rating against a trained
// model. It holds no mutable state and is safe for concurrent use.
type Predictor struct {
	cfg Config
}

// NewPredictor creates a predictor with the given tuning parameters.
func NewPredictor(cfg Config) *Predictor {
	return &Predictor{cfg: cfg}
}

// Predict estimates the user's rating for a movie.
//
// Neighbors are the movies the user has already rated whose similarity
// to the target exceeds MinSimilarity; the k most similar contribute a
// similarity-weighted average. With fewer than MinK qualifying
// neighbors (or zero total weight) the estimate degrades to the
// movie's mean rating, then to the global mean for movies the model
// has never seen. Every path clamps into the rating scale.
func (p *Predictor) Predict(m *TrainedModel, userID, movieID int) (Prediction, error) {
	ratings, ok := m.Matrix[userID]
	if !ok {
		return Prediction{}, ErrUnknownUser
	}
	return p.predict(m, sortedKeys(ratings), ratings, movieID), nil
}

// predict is the shared core. rated must hold the keys of ratings in
// ascending order so neighbor selection is deterministic.
func (p *Predictor) predict(m *TrainedModel, rated []int, ratings map[int]float64, movieID int) Prediction {
	sel := newTopK(p.cfg.K)
	for _, ratedID := range rated {
		if ratedID == movieID {
			continue
		}
		sim, ok := m.Sim(movieID, ratedID)
		if !ok || sim <= p.cfg.MinSimilarity {
			continue
		}
		sel.Add(ratedID, sim)
	}

	neighbors := sel.Sorted()
	if len(neighbors) >= p.cfg.MinK {
		var num, den float64
		for _, n := range neighbors {
			num += n.score * ratings[n.id]
			den += n.score
		}
		if den > 0 {
			return Prediction{
				Estimate:  clampRating(num / den),
				Neighbors: len(neighbors),
			}
		}
	}

	est, ok := m.ItemMeans[movieID]
	if !ok {
		est = m.GlobalMean
	}
	return Prediction{
		Estimate:  clampRating(est),
		Neighbors: len(neighbors),
		Fallback:  true,
	}
}

func clampRating(r float64) float64 {
	return math.Min(RatingMax, math.Max(RatingMin, r))
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
