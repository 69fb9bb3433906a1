// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// healthStatus is the payload of the health endpoints.
type healthStatus struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime"`
	Checks   map[string]string `json:"checks,omitempty"`
	ModelAge string            `json:"model_age,omitempty"`
}

// HealthCheck handles GET /health
// Reports overall service health: database reachability and model
// state. A service without a trained model is degraded, not down.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	status := healthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
		Checks: make(map[string]string),
	}
	httpStatus := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		status.Checks["database"] = "unreachable: " + err.Error()
		status.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		status.Checks["database"] = "ok"
	}

	engineStatus := h.engine.Status()
	status.Checks["model"] = string(engineStatus.State)
	if engineStatus.State != recommend.StateReady && status.Status == "healthy" {
		status.Status = "degraded"
	}
	if !engineStatus.TrainedAt.IsZero() {
		status.ModelAge = time.Since(engineStatus.TrainedAt).Round(time.Second).String()
	}

	respondSuccess(w, httpStatus, status, queryStart)
}

// HealthLive handles GET /health/live
// Liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, queryStart)
}

// HealthReady handles GET /health/ready
// Readiness probe: the database answers and a model is published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	ctx := r.Context()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
			"Database is unreachable", err)
		return
	}
	if h.engine.Status().State != recommend.StateReady {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY",
			"No trained model is available yet", nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, queryStart)
}
