// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/kinograph/internal/logging"
)

// slowRequestThreshold promotes a completed-request log line from
// debug to warn.
const slowRequestThreshold = 1000 * time.Millisecond

// RequestLogger logs each completed request with method, path, status
// and duration through the request-scoped zerolog logger, so lines
// carry the request ID set by RequestID. Requests slower than
// slowRequestThreshold log at warn level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &metricsResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		evt := logging.Ctx(r.Context()).Debug()
		if duration > slowRequestThreshold {
			evt = logging.Ctx(r.Context()).Warn()
		}
		evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("Request completed")
	})
}
