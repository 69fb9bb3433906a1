// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/kinograph/internal/models"
)

// UpsertRating writes a rating, replacing any previous rating the
// user gave the movie. Both the user and the movie must exist.
func (db *DB) UpsertRating(ctx context.Context, rating models.Rating) error {
	exists, err := db.UserExists(ctx, rating.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", rating.UserID, ErrNotFound)
	}
	if _, err := db.GetMovie(ctx, rating.MovieID); err != nil {
		return fmt.Errorf("movie %d: %w", rating.MovieID, err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO ratings (user_id, movie_id, value) VALUES (?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET value = excluded.value`,
		rating.UserID, rating.MovieID, rating.Value)
	if err != nil {
		return fmt.Errorf("failed to upsert rating (%d, %d): %w", rating.UserID, rating.MovieID, err)
	}
	return nil
}

// GetRatingsByUser returns the user's rating history joined with
// movie titles, ordered by movie ID. Empty history is not an error.
func (db *DB) GetRatingsByUser(ctx context.Context, userID int) ([]models.RatingDetail, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.user_id, r.movie_id, r.value, m.title
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = ?
		ORDER BY r.movie_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	ratings := make([]models.RatingDetail, 0)
	for rows.Next() {
		var r models.RatingDetail
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Value, &r.Title); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// ListRatings returns every stored rating ordered by user then movie.
func (db *DB) ListRatings(ctx context.Context) ([]models.Rating, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, movie_id, value
		FROM ratings
		ORDER BY user_id, movie_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// DeleteRating removes a single rating. Returns ErrNotFound when the
// user never rated the movie.
func (db *DB) DeleteRating(ctx context.Context, userID, movieID int) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete rating (%d, %d): %w", userID, movieID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRatings returns the total number of stored ratings.
func (db *DB) CountRatings(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}
