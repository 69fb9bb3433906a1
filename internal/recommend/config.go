// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"fmt"
	"time"
)

// Config contains tuning parameters for training, prediction, ranking
// and explanation synthesis.
type Config struct {
	// K is the maximum number of neighbors used per prediction.
	K int `koanf:"k"`

	// MinK is the minimum number of qualifying neighbors required
	// before the weighted average is trusted; below it the predictor
	// falls back to the item mean.
	MinK int `koanf:"min_k"`

	// MinCommonRaters is the minimum number of users who must have
	// rated both movies for their similarity to be defined at all.
	MinCommonRaters int `koanf:"min_common_raters"`

	// MinSimilarity is the threshold a neighbor's similarity must
	// exceed to contribute to a prediction.
	MinSimilarity float64 `koanf:"min_similarity"`

	// QualityFloor drops recommendations whose predicted rating falls
	// below it.
	QualityFloor float64 `koanf:"quality_floor"`

	// LikedThreshold is the minimum rating for a movie to count as
	// "liked" when building explanations.
	LikedThreshold float64 `koanf:"liked_threshold"`

	// ExplainSimilarity is the threshold a liked movie's similarity to
	// the candidate must exceed to appear in an explanation.
	ExplainSimilarity float64 `koanf:"explain_similarity"`

	// ExplainNeighbors caps how many liked movies an explanation names.
	ExplainNeighbors int `koanf:"explain_neighbors"`

	// NumWorkers is the number of goroutines computing similarity rows
	// during training. Zero means runtime.NumCPU.
	NumWorkers int `koanf:"num_workers"`

	// ModelPath is where the trained model artifact is persisted.
	ModelPath string `koanf:"model_path"`

	// RetrainInterval enables periodic background retraining when
	// greater than zero.
	RetrainInterval time.Duration `koanf:"retrain_interval"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		K:                 10,
		MinK:              3,
		MinCommonRaters:   3,
		MinSimilarity:     0.0,
		QualityFloor:      3.0,
		LikedThreshold:    3.5,
		ExplainSimilarity: 0.1,
		ExplainNeighbors:  3,
		NumWorkers:        0,
		ModelPath:         "data/model.json",
		RetrainInterval:   0,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.MinK <= 0 {
		return fmt.Errorf("min_k must be positive, got %d", c.MinK)
	}
	if c.MinK > c.K {
		return fmt.Errorf("min_k (%d) cannot exceed k (%d)", c.MinK, c.K)
	}
	if c.MinCommonRaters < 2 {
		return fmt.Errorf("min_common_raters must be at least 2, got %d", c.MinCommonRaters)
	}
	if c.QualityFloor < RatingMin || c.QualityFloor > RatingMax {
		return fmt.Errorf("quality_floor must be within [%.1f, %.1f], got %g", RatingMin, RatingMax, c.QualityFloor)
	}
	if c.LikedThreshold < RatingMin || c.LikedThreshold > RatingMax {
		return fmt.Errorf("liked_threshold must be within [%.1f, %.1f], got %g", RatingMin, RatingMax, c.LikedThreshold)
	}
	if c.ExplainNeighbors <= 0 {
		return fmt.Errorf("explain_neighbors must be positive, got %d", c.ExplainNeighbors)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("num_workers cannot be negative, got %d", c.NumWorkers)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required")
	}
	if c.RetrainInterval < 0 {
		return fmt.Errorf("retrain_interval cannot be negative, got %s", c.RetrainInterval)
	}
	return nil
}
