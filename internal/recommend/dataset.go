// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import "fmt"

// BuildDataset folds the rating feed into a user-by-movie matrix plus
// a movie metadata index. Duplicate (user, movie) rows keep the last
// rating seen, matching upsert semantics at the storage layer.
func BuildDataset(rows []RatingRow) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrDataUnavailable
	}

	matrix := make(RatingMatrix)
	movies := make(map[int]MovieInfo)

	for _, row := range rows {
		if row.Rating < RatingMin || row.Rating > RatingMax {
			return nil, fmt.Errorf("rating %g for user %d movie %d outside [%g, %g]",
				row.Rating, row.UserID, row.MovieID, RatingMin, RatingMax)
		}

		userRow, ok := matrix[row.UserID]
		if !ok {
			userRow = make(map[int]float64)
			matrix[row.UserID] = userRow
		}
		userRow[row.MovieID] = row.Rating

		if _, seen := movies[row.MovieID]; !seen {
			movies[row.MovieID] = MovieInfo{
				ID:     row.MovieID,
				Title:  row.Title,
				Genres: row.Genres,
			}
		}
	}

	return &Dataset{
		Matrix:      matrix,
		Movies:      movies,
		RatingCount: len(rows),
	}, nil
}
