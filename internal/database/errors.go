// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package database

import "errors"

// Sentinel errors returned by data access methods. Handlers map them
// to HTTP status codes with errors.Is.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
)
