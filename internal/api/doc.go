// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package api provides the HTTP surface of the service using the chi router.

# Overview

The package wires three layers:

  - Router: chi route tree with per-group middleware (rate limiting,
    CORS, security headers, Prometheus instrumentation)
  - Handler: request decoding, validation and response encoding for
    every endpoint
  - helpers: the shared APIResponse envelope and error mapping from
    domain sentinel errors to HTTP status codes

# Endpoints

Catalog CRUD:

	POST   /api/v1/users              create a user
	GET    /api/v1/users              list users
	GET    /api/v1/users/next-id      next unused user ID
	DELETE /api/v1/users/{userID}     delete a user and their ratings
	GET    /api/v1/users/{userID}/ratings

	POST   /api/v1/movies             create a movie
	GET    /api/v1/movies             list movies (paginated)
	GET    /api/v1/movies/{movieID}   movie with its genres
	PUT    /api/v1/movies/{movieID}   rename a movie
	DELETE /api/v1/movies/{movieID}   delete a movie, its links and ratings

	POST   /api/v1/genres             create a genre
	GET    /api/v1/genres             list genres
	DELETE /api/v1/genres/{genre}     delete a genre and its links
	POST   /api/v1/movie-genres       link a movie to a genre
	GET    /api/v1/movie-genres       list all movie-genre links
	DELETE /api/v1/movie-genres       unlink a movie from a genre

	POST   /api/v1/ratings            upsert a rating
	GET    /api/v1/ratings            list all ratings
	PUT    /api/v1/ratings            upsert a rating (alias of POST)
	DELETE /api/v1/ratings            delete a rating

Recommendations:

	GET  /api/v1/recommend/{userID}?top_n=N  ranked recommendations
	GET  /api/v1/predict/{userID}/{movieID}  single rating prediction
	POST /api/v1/recommend/train             trigger a retrain
	GET  /api/v1/recommend/train/status      engine status

Operations:

	POST /api/v1/import   run the configured CSV import
	GET  /api/v1/feed     denormalized rating feed
	GET  /health et al.   liveness and readiness probes
	GET  /metrics         Prometheus metrics

# Error Mapping

Domain sentinel errors map to stable error codes:

	database.ErrNotFound             -> 404 NOT_FOUND
	recommend.ErrModelNotReady       -> 503 MODEL_NOT_READY
	recommend.ErrTrainingInProgress  -> 409 CONFLICT
	recommend.ErrInsufficientData    -> 400 VALIDATION_ERROR
	recommend.ErrDataUnavailable     -> 503 DATABASE_ERROR
	anything else                    -> 500 INTERNAL_ERROR
*/
package api
