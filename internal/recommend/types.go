// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"strings"
	"time"
)

// Rating scale bounds for explicit feedback.
const (
	RatingMin = 0.5
	RatingMax = 5.0
)

// GenreSeparator delimits genres in the pipe-joined genre string
// carried by the rating feed (e.g. "Action|Sci-Fi|Thriller").
const GenreSeparator = "|"

// RatingRow is one denormalized row of the rating feed: a single
// user/movie rating joined with the movie's title and genres.
type RatingRow struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
	Title   string  `json:"title"`
	Genres  string  `json:"genres"`
}

// MovieInfo is the display metadata kept alongside the model for
// building responses and explanations.
type MovieInfo struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Genres string `json:"genres"`
}

// GenreList splits the pipe-joined genre string, dropping empty tokens.
func (m MovieInfo) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	parts := strings.Split(m.Genres, GenreSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RatingMatrix maps userID -> movieID -> rating. Absent entries mean
// the user has not rated the movie; a stored zero is a real rating of
// zero, not a gap.
type RatingMatrix map[int]map[int]float64

// Rating returns the user's rating for a movie and whether it exists.
func (rm RatingMatrix) Rating(userID, movieID int) (float64, bool) {
	row, ok := rm[userID]
	if !ok {
		return 0, false
	}
	r, ok := row[movieID]
	return r, ok
}

// Dataset is the in-memory training snapshot built from the rating feed.
type Dataset struct {
	Matrix RatingMatrix
	Movies map[int]MovieInfo

	// RatingCount is the number of feed rows folded into Matrix.
	RatingCount int
}

// TrainedModel is an immutable, self-contained artifact: everything
// prediction and explanation need, with no reference back to the
// database. Once published via the engine it is never mutated.
type TrainedModel struct {
	Matrix     RatingMatrix              `json:"matrix"`
	Similarity map[int]map[int]float64   `json:"similarity"`
	ItemMeans  map[int]float64           `json:"item_means"`
	GlobalMean float64                   `json:"global_mean"`
	Movies     map[int]MovieInfo         `json:"movies"`
	Version    int                       `json:"version"`
	TrainedAt  time.Time                 `json:"trained_at"`

	UserCount   int `json:"user_count"`
	MovieCount  int `json:"movie_count"`
	RatingCount int `json:"rating_count"`

	// genreSets is derived from Movies once per model and shared
	// read-only across requests. Rebuilt after restore.
	genreSets map[int]map[string]struct{}
}

// Sim returns the similarity between two movies. The second return
// distinguishes "no valid similarity" from a genuine zero correlation.
func (m *TrainedModel) Sim(a, b int) (float64, bool) {
	row, ok := m.Similarity[a]
	if !ok {
		return 0, false
	}
	s, ok := row[b]
	return s, ok
}

// GenreSet returns the precomputed genre set for a movie, or nil if
// the movie is unknown or has no genres.
func (m *TrainedModel) GenreSet(movieID int) map[string]struct{} {
	return m.genreSets[movieID]
}

// finalize rebuilds derived lookups. Called after training and after
// restoring a persisted model, before the model becomes visible.
func (m *TrainedModel) finalize() {
	m.genreSets = make(map[int]map[string]struct{}, len(m.Movies))
	for id, info := range m.Movies {
		genres := info.GenreList()
		if len(genres) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(genres))
		for _, g := range genres {
			set[g] = struct{}{}
		}
		m.genreSets[id] = set
	}
}

// Prediction is the outcome of a single rating estimate.
type Prediction struct {
	Estimate float64 `json:"estimate"`

	// Neighbors is the number of rated movies that contributed weight.
	Neighbors int `json:"neighbors"`

	// Fallback is true when the estimate came from the item or global
	// mean rather than the weighted neighbor average.
	Fallback bool `json:"fallback"`
}

// Recommendation is one ranked result with its explanation.
type Recommendation struct {
	MovieID         int     `json:"movie_id"`
	Title           string  `json:"title"`
	Genres          string  `json:"genres"`
	PredictedRating float64 `json:"predicted_rating"`
	Explanation     string  `json:"explanation"`
}

// EngineState describes the model lifecycle.
type EngineState string

const (
	StateUninitialized EngineState = "uninitialized"
	StateLoading       EngineState = "loading"
	StateTraining      EngineState = "training"
	StateReady         EngineState = "ready"
)

// TrainingStatus is a point-in-time snapshot of the engine for the
// status endpoint.
type TrainingStatus struct {
	State        EngineState `json:"state"`
	ModelVersion int         `json:"model_version"`
	TrainedAt    time.Time   `json:"trained_at,omitempty"`
	UserCount    int         `json:"user_count"`
	MovieCount   int         `json:"movie_count"`
	RatingCount  int         `json:"rating_count"`
	LastDuration string      `json:"last_duration,omitempty"`
	LastError    string      `json:"last_error,omitempty"`
}
