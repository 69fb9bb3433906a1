// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Model training runs and duration
// - Recommendation and prediction serving
// - CSV import throughput

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Model Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300}, // Full retrains can take minutes
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"result"}, // "success", "failure", "busy"
	)

	TrainingRatingsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_training_ratings_processed_total",
			Help: "Total number of ratings processed across training runs",
		},
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_training_last_success_timestamp",
			Help: "Unix timestamp of last successful training run",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_version",
			Help: "Version of the model currently serving recommendations",
		},
	)

	ModelMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_movies",
			Help: "Number of movies in the current model",
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_users",
			Help: "Number of users in the current model",
		},
	)

	// Recommendation Serving Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"result"}, // "personalized", "non_personalized", "unknown_user", "not_ready"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PredictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of rating predictions computed",
		},
	)

	PredictionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_fallbacks_total",
			Help: "Total number of predictions that fell back to item or global means",
		},
	)

	// CSV Import Metrics
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Duration of CSV import runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600}, // Large dumps can take minutes
		},
	)

	ImportRowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_processed_total",
			Help: "Total number of CSV rows processed during import",
		},
		[]string{"file"}, // "movies", "ratings"
	)

	ImportRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_skipped_total",
			Help: "Total number of malformed CSV rows skipped during import",
		},
		[]string{"file"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTraining records the outcome of a model training run.
// On success the model gauges are updated from the new model's counts.
func RecordTraining(duration time.Duration, ratings int, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
	TrainingRatingsProcessed.Add(float64(ratings))
	TrainingLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordTrainingBusy records a training request rejected because a run
// was already in progress.
func RecordTrainingBusy() {
	TrainingRuns.WithLabelValues("busy").Inc()
}

// SetModelInfo updates the gauges describing the currently served model.
func SetModelInfo(version, users, movies int) {
	ModelVersion.Set(float64(version))
	ModelUsers.Set(float64(users))
	ModelMovies.Set(float64(movies))
}

// RecordRecommendation records a served recommendation request.
func RecordRecommendation(result string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(result).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordPrediction records a single rating prediction and whether it
// required a fallback estimate.
func RecordPrediction(fallback bool) {
	PredictionsTotal.Inc()
	if fallback {
		PredictionFallbacks.Inc()
	}
}

// RecordImport records a completed CSV import run.
func RecordImport(file string, duration time.Duration, processed, skipped int) {
	ImportDuration.Observe(duration.Seconds())
	ImportRowsProcessed.WithLabelValues(file).Add(float64(processed))
	ImportRowsSkipped.WithLabelValues(file).Add(float64(skipped))
}
