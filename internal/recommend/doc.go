// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package recommend implements item-based collaborative filtering over
// explicit movie ratings.
//
// Training builds an item-item Pearson similarity matrix from a snapshot
// of the rating feed. Prediction estimates a user's rating for an unseen
// movie as the similarity-weighted average of their ratings for the k most
// similar movies, falling back to the movie's mean rating (then the global
// mean) when too few neighbors qualify. Recommendation ranks all unrated
// movies by predicted rating and attaches a human-readable explanation to
// each result.
//
// The Engine owns the published model. Reads go through an atomic pointer
// so requests are never blocked by a retrain; a retrain builds a complete
// replacement model off to the side and publishes it in one swap.
package recommend
