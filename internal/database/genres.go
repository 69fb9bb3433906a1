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

// CreateGenre registers a genre name. Creating an existing name is a
// no-op.
func (db *DB) CreateGenre(ctx context.Context, name string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO genres (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	return nil
}

// ListGenres returns all genres ordered by name.
func (db *DB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// DeleteGenre removes a genre and every movie link that references it.
// Returns ErrNotFound when the name is unknown.
func (db *DB) DeleteGenre(ctx context.Context, name string) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var genreID int
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM genres WHERE name = ?`, name).Scan(&genreID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("genre %q: %w", name, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up genre %q: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM movie_genres WHERE genre_id = ?`, genreID); err != nil {
			return fmt.Errorf("failed to unlink genre %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM genres WHERE id = ?`, genreID); err != nil {
			return fmt.Errorf("failed to delete genre %q: %w", name, err)
		}
		return nil
	})
}

// ListMovieGenres returns every movie-genre link ordered by movie ID
// then genre name.
func (db *DB) ListMovieGenres(ctx context.Context) ([]models.MovieGenre, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT mg.movie_id, g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		ORDER BY mg.movie_id, g.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movie genres: %w", err)
	}
	defer rows.Close()

	links := make([]models.MovieGenre, 0)
	for rows.Next() {
		var link models.MovieGenre
		if err := rows.Scan(&link.MovieID, &link.GenreName); err != nil {
			return nil, fmt.Errorf("failed to scan movie genre: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// AddMovieGenre links a movie to a genre by name. Both must already
// exist; the link itself is idempotent.
func (db *DB) AddMovieGenre(ctx context.Context, movieID int, genreName string) error {
	if _, err := db.GetMovie(ctx, movieID); err != nil {
		return err
	}

	var genreID int
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM genres WHERE name = ?`, genreName).Scan(&genreID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("genre %q: %w", genreName, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up genre %q: %w", genreName, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		movieID, genreID)
	if err != nil {
		return fmt.Errorf("failed to link movie %d to genre %q: %w", movieID, genreName, err)
	}
	return nil
}

// RemoveMovieGenre unlinks a movie from a genre. Returns ErrNotFound
// when no such link exists.
func (db *DB) RemoveMovieGenre(ctx context.Context, movieID int, genreName string) error {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM movie_genres
		WHERE movie_id = ?
		  AND genre_id IN (SELECT id FROM genres WHERE name = ?)`,
		movieID, genreName)
	if err != nil {
		return fmt.Errorf("failed to unlink movie %d from genre %q: %w", movieID, genreName, err)
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
