// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import "errors"

// Sentinel errors for the recommendation lifecycle. Callers match
// these with errors.Is to pick the right HTTP status.
var (
	// ErrDataUnavailable means the rating feed could not be read or
	// was empty at train time.
	ErrDataUnavailable = errors.New("rating data unavailable")

	// ErrInsufficientData means the matrix held no items, so there is
	// nothing to train on.
	ErrInsufficientData = errors.New("insufficient rating data to train")

	// ErrModelNotReady means no model has been published yet.
	ErrModelNotReady = errors.New("model not ready")

	// ErrModelNotFound means no persisted model artifact exists.
	ErrModelNotFound = errors.New("persisted model not found")

	// ErrModelCorrupt means a persisted artifact exists but could not
	// be decoded.
	ErrModelCorrupt = errors.New("persisted model corrupt")

	// ErrUnknownUser means the user has no ratings in the trained model.
	ErrUnknownUser = errors.New("user not present in trained model")

	// ErrTrainingInProgress means a retrain was requested while another
	// is still running.
	ErrTrainingInProgress = errors.New("training already in progress")
)
