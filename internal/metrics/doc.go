// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Database query performance (DuckDB)
  - Model training runs and the currently served model version
  - Recommendation and prediction serving
  - CSV import throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

Training Metrics:
  - model_training_duration_seconds: Training run duration (histogram)
  - model_training_runs_total: Training runs by result (counter)
    Labels: result (success, failure, busy)
  - model_training_ratings_processed_total: Ratings processed (counter)
  - model_training_last_success_timestamp: Last successful run (gauge)
  - model_version: Version of the serving model (gauge)
  - model_users, model_movies: Size of the serving model (gauges)

Serving Metrics:
  - recommendation_requests_total: Served requests by result (counter)
    Labels: result (personalized, non_personalized, unknown_user, not_ready)
  - recommendation_duration_seconds: Computation latency (histogram)
  - predictions_total: Rating predictions computed (counter)
  - prediction_fallbacks_total: Predictions using mean fallbacks (counter)

Import Metrics:
  - import_duration_seconds: CSV import duration (histogram)
  - import_rows_processed_total / import_rows_skipped_total (counters)
    Labels: file (movies, ratings)

# Usage

Record metrics through the helper functions:

	metrics.RecordAPIRequest("GET", "/api/v1/recommend", "200", elapsed)
	metrics.RecordTraining(elapsed, model.RatingCount, err)
	metrics.SetModelInfo(model.Version, model.UserCount, model.MovieCount)

All collectors are registered via promauto at package init and are safe
for concurrent use.
*/
package metrics
