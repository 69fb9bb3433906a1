// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import (
	"fmt"
	"strings"
)

// Explanation texts. The generic sentence is the last resort when
// neither similarity nor genre evidence exists for a candidate.
const (
	explainGeneric      = "This movie is well rated by users with similar taste to yours."
	unknownLikedTitle   = "a similar movie"
	explainSingleFormat = "Recommended because you liked %s (rating: %.1f)."
	explainMultiFormat  = "Recommended because you liked similar movies such as %s and %s."
	explainGenreFormat  = "Recommended because it features genres you often enjoy: %s."
)

// explain builds the human-readable reason for recommending candidate.
// Three tiers, first match wins:
//
//  1. Liked movies similar to the candidate (similarity above the
//     explain threshold), the strongest few named with their ratings.
//  2. Overlap between the candidate's genres and genres the user's
//     liked movies feature.
//  3. A generic sentence.
func (r *Recommender) explain(m *TrainedModel, candidate int, liked []likedMovie, ratings map[int]float64) string {
	if s := r.explainBySimilarity(m, candidate, liked, ratings); s != "" {
		return s
	}
	if s := r.explainByGenres(m, candidate, liked); s != "" {
		return s
	}
	return explainGeneric
}

func (r *Recommender) explainBySimilarity(m *TrainedModel, candidate int, liked []likedMovie, ratings map[int]float64) string {
	sel := newTopK(r.cfg.ExplainNeighbors)
	for _, lm := range liked {
		sim, ok := m.Sim(candidate, lm.id)
		if !ok || sim <= r.cfg.ExplainSimilarity {
			continue
		}
		sel.Add(lm.id, sim)
	}

	best := sel.Sorted()
	if len(best) == 0 {
		return ""
	}

	titles := make([]string, len(best))
	for i, s := range best {
		titles[i] = unknownLikedTitle
		if info, ok := m.Movies[s.id]; ok && info.Title != "" {
			titles[i] = info.Title
		} else {
			// The movie came from the same feed snapshot, so a
			// missing title points at a data integrity problem.
			r.logger.Warn().
				Int("movie_id", s.id).
				Int("candidate_id", candidate).
				Msg("liked movie missing from model metadata during explanation")
		}
	}

	if len(best) == 1 {
		return fmt.Sprintf(explainSingleFormat, titles[0], ratings[best[0].id])
	}

	texts := make([]string, len(best))
	for i, s := range best {
		texts[i] = fmt.Sprintf("%s (rating: %.1f)", titles[i], ratings[s.id])
	}
	return fmt.Sprintf(explainMultiFormat, strings.Join(texts[:len(texts)-1], ", "), texts[len(texts)-1])
}

// explainByGenres matches the candidate's genres against how often
// each genre appears across the user's liked movies. Empty genre
// tokens never count. Matches keep the candidate's own genre order.
func (r *Recommender) explainByGenres(m *TrainedModel, candidate int, liked []likedMovie) string {
	info, ok := m.Movies[candidate]
	if !ok {
		return ""
	}
	candidateGenres := info.GenreList()
	if len(candidateGenres) == 0 {
		return ""
	}

	genreCounts := make(map[string]int)
	for _, lm := range liked {
		for genre := range m.GenreSet(lm.id) {
			genreCounts[genre]++
		}
	}

	matching := make([]string, 0, len(candidateGenres))
	for _, genre := range candidateGenres {
		if genreCounts[genre] > 0 {
			matching = append(matching, genre)
		}
	}
	if len(matching) == 0 {
		return ""
	}
	return fmt.Sprintf(explainGenreFormat, strings.Join(matching, ", "))
}
