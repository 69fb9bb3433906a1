// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/kinograph/internal/models"
)

// CreateMovie adds a movie to the catalog. Creating an existing ID is
// a no-op.
func (db *DB) CreateMovie(ctx context.Context, movie models.Movie) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO movies (id, title) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		movie.ID, movie.Title)
	if err != nil {
		return fmt.Errorf("failed to create movie %d: %w", movie.ID, err)
	}
	return nil
}

// GetMovie returns a single movie or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id int) (models.Movie, error) {
	var m models.Movie
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title FROM movies WHERE id = ?`, id).Scan(&m.ID, &m.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, ErrNotFound
	}
	if err != nil {
		return models.Movie{}, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return m, nil
}

// ListMovies returns one page of the catalog ordered by ID, plus the
// total count for pagination.
func (db *DB) ListMovies(ctx context.Context, page, pageSize int) ([]models.Movie, int, error) {
	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	offset := (page - 1) * pageSize
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title FROM movies ORDER BY id LIMIT ? OFFSET ?`, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0, pageSize)
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title); err != nil {
			return nil, 0, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, total, rows.Err()
}

// UpdateMovieTitle renames a movie. Returns ErrNotFound for an
// unknown ID.
func (db *DB) UpdateMovieTitle(ctx context.Context, id int, title string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", id, err)
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

// DeleteMovie removes a movie along with its genre links and ratings.
func (db *DB) DeleteMovie(ctx context.Context, id int) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete movie %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete genre links for movie %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE movie_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete ratings for movie %d: %w", id, err)
		}
		return nil
	})
}

// GetMovieGenres returns the movie's genre names in alphabetical
// order. An empty slice for a known movie means no genres assigned.
func (db *DB) GetMovieGenres(ctx context.Context, movieID int) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ?
		ORDER BY g.name`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get genres for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	genres := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}
