// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for request ID tracking,
access logging and Prometheus metrics integration. Rate limiting, CORS and
compression are handled by the chi ecosystem middlewares wired in
internal/api.

Key Components:

  - Request ID: UUID-based request tracking for distributed tracing
  - Request Logger: zerolog access log, slow requests promoted to warn
  - Prometheus Metrics: HTTP request/response instrumentation

Usage with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

RequestID honors an X-Request-ID header set by an upstream proxy and
otherwise generates a UUID. The ID is echoed in the response header and
stored in the request context, where the logging package picks it up:

	logging.Ctx(r.Context()).Info().Msg("handling request")
	// {"level":"info","request_id":"...","message":"handling request"}

PrometheusMetrics records api_requests_total, api_request_duration_seconds
and the api_active_requests gauge for every request it wraps.
*/
package middleware
