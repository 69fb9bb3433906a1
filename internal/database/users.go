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

// CreateUser registers a user ID. Creating an existing user is a
// no-op, matching upsert semantics across the write API.
func (db *DB) CreateUser(ctx context.Context, id int) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("failed to create user %d: %w", id, err)
	}
	return nil
}

// ListUsers returns all users ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserExists reports whether the user ID is registered.
func (db *DB) UserExists(ctx context.Context, id int) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return true, nil
}

// DeleteUser removes the user and their ratings. Returns ErrNotFound
// for an unknown user.
func (db *DB) DeleteUser(ctx context.Context, id int) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE user_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete ratings for user %d: %w", id, err)
		}
		return nil
	})
}

// NextUserID returns the smallest ID above every registered user,
// starting from 1 on an empty table.
func (db *DB) NextUserID(ctx context.Context) (int, error) {
	var next int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM users`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next user id: %w", err)
	}
	return next, nil
}
