// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import "fmt"

// schemaStatements creates the catalog tables. Order matters: the
// genre ID sequence must exist before the genres table referencing it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id    INTEGER PRIMARY KEY,
		title VARCHAR NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS genre_id_seq`,
	`CREATE TABLE IF NOT EXISTS genres (
		id   INTEGER PRIMARY KEY DEFAULT nextval('genre_id_seq'),
		name VARCHAR NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS movie_genres (
		movie_id INTEGER NOT NULL,
		genre_id INTEGER NOT NULL,
		PRIMARY KEY (movie_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id  INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		value    DOUBLE  NOT NULL CHECK (value >= 0.5 AND value <= 5.0),
		PRIMARY KEY (user_id, movie_id)
	)`,
}

func (db *DB) initSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
