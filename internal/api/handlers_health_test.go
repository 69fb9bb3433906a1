// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health", func(t *testing.T) {
		code, env := doJSON(t, router, http.MethodGet, "/health", nil)
		if code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var status healthStatus
		decodeData(t, env, &status)
		if status.Status != "healthy" {
			t.Errorf("status = %q, want healthy", status.Status)
		}
		if status.Checks["database"] != "ok" {
			t.Errorf("database check = %q", status.Checks["database"])
		}
		if status.Checks["model"] != "ready" {
			t.Errorf("model check = %q", status.Checks["model"])
		}
	})

	t.Run("live", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/health/live", nil)
		if code != http.StatusOK {
			t.Errorf("status = %d", code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		code, _ := doJSON(t, router, http.MethodGet, "/health/ready", nil)
		if code != http.StatusOK {
			t.Errorf("status = %d", code)
		}
	})
}
