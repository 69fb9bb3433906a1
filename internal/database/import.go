// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/kinograph/internal/models"
)

// ImportMovies writes a batch of movies with their genres in one
// transaction. Existing movies and genres are left untouched, so
// re-importing the same file is safe.
func (db *DB) ImportMovies(ctx context.Context, batch []models.MovieImport) error {
	if len(batch) == 0 {
		return nil
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		genreIDs := make(map[string]int)

		for _, movie := range batch {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO movies (id, title) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
				movie.ID, movie.Title); err != nil {
				return fmt.Errorf("failed to import movie %d: %w", movie.ID, err)
			}

			for _, genre := range movie.Genres {
				id, ok := genreIDs[genre]
				if !ok {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO genres (name) VALUES (?) ON CONFLICT (name) DO NOTHING`,
						genre); err != nil {
						return fmt.Errorf("failed to import genre %q: %w", genre, err)
					}
					if err := tx.QueryRowContext(ctx,
						`SELECT id FROM genres WHERE name = ?`, genre).Scan(&id); err != nil {
						return fmt.Errorf("failed to resolve genre %q: %w", genre, err)
					}
					genreIDs[genre] = id
				}

				if _, err := tx.ExecContext(ctx,
					`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
					movie.ID, id); err != nil {
					return fmt.Errorf("failed to link movie %d to genre %q: %w", movie.ID, genre, err)
				}
			}
		}
		return nil
	})
}

// ImportRatings writes a batch of ratings in one transaction,
// registering any users the batch references. Duplicate (user, movie)
// pairs keep the first imported value, matching the bulk loader's
// conflict policy rather than the API's upsert.
func (db *DB) ImportRatings(ctx context.Context, batch []models.Rating) error {
	if len(batch) == 0 {
		return nil
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, r := range batch {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (id) VALUES (?) ON CONFLICT (id) DO NOTHING`,
				r.UserID); err != nil {
				return fmt.Errorf("failed to import user %d: %w", r.UserID, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO ratings (user_id, movie_id, value) VALUES (?, ?, ?)
				ON CONFLICT (user_id, movie_id) DO NOTHING`,
				r.UserID, r.MovieID, r.Value); err != nil {
				return fmt.Errorf("failed to import rating (%d, %d): %w", r.UserID, r.MovieID, err)
			}
		}
		return nil
	})
}
