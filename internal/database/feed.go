// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// FetchRatingFeed returns every rating joined with the movie's title
// and pipe-joined genres, the denormalized snapshot the trainer
// consumes. Movies without genres get an empty genre string.
func (db *DB) FetchRatingFeed(ctx context.Context) ([]recommend.RatingRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.user_id, r.movie_id, r.value, m.title,
		       COALESCE(string_agg(g.name, '|' ORDER BY g.name), '') AS genres
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		GROUP BY r.user_id, r.movie_id, r.value, m.title
		ORDER BY r.user_id, r.movie_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rating feed: %w", err)
	}
	defer rows.Close()

	feed := make([]recommend.RatingRow, 0)
	for rows.Next() {
		var row recommend.RatingRow
		if err := rows.Scan(&row.UserID, &row.MovieID, &row.Rating, &row.Title, &row.Genres); err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feed = append(feed, row)
	}
	return feed, rows.Err()
}

// Compile-time check that DB satisfies the engine's feed contract.
var _ recommend.FeedProvider = (*DB)(nil)
