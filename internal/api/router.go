// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/middleware"
)

// Router wires handlers and middleware into the chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter builds a router from the handler and server configuration.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	if cfg.Server.RateLimitReqs > 0 {
		mwCfg.RateLimitRequests = cfg.Server.RateLimitReqs
	}
	if cfg.Server.RateLimitWindow > 0 {
		mwCfg.RateLimitWindow = cfg.Server.RateLimitWindow
	}
	mwCfg.RateLimitDisabled = cfg.Server.RateLimitDisabled

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwCfg),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)          // X-Request-ID header plus logging context
	r.Use(middleware.RequestLogger)      // zerolog access log with request ID
	r.Use(chimiddleware.RealIP)          // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)       // Recover from panics
	r.Use(chimiddleware.Compress(5))     // gzip responses
	r.Use(router.chiMiddleware.CORS())   // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring can poll frequently.
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.HealthCheck)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		// Users
		r.Post("/users", router.handler.UserCreate)
		r.Get("/users", router.handler.UserList)
		r.Get("/users/next-id", router.handler.UserNextID)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()
			r.Delete("/", router.handler.UserDelete)
			r.Get("/ratings", router.handler.UserRatings)
		})

		// Movies
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/movies", router.handler.MovieCreate)
		r.Get("/movies", router.handler.MovieList)
		r.Route("/movies/{movieID}", func(r chi.Router) {
			r.Use(chiPathValue)
			r.Get("/", router.handler.MovieGet)
			r.With(router.chiMiddleware.RateLimitWrite()).Put("/", router.handler.MovieUpdate)
			r.With(router.chiMiddleware.RateLimitWrite()).Delete("/", router.handler.MovieDelete)
		})

		// Genres and movie-genre links
		r.Post("/genres", router.handler.GenreCreate)
		r.Get("/genres", router.handler.GenreList)
		r.Route("/genres/{genre}", func(r chi.Router) {
			r.Use(chiPathValue)
			r.Delete("/", router.handler.GenreDelete)
		})
		r.Post("/movie-genres", router.handler.MovieGenreCreate)
		r.Get("/movie-genres", router.handler.MovieGenreList)
		r.Delete("/movie-genres", router.handler.MovieGenreDelete)

		// Ratings
		r.Post("/ratings", router.handler.RatingUpsert)
		r.Put("/ratings", router.handler.RatingUpsert)
		r.Get("/ratings", router.handler.RatingList)
		r.Delete("/ratings", router.handler.RatingDelete)

		// Recommendations
		r.Route("/recommend", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitTrain()).Post("/train", router.handler.TrainPost)
			r.Get("/train/status", router.handler.TrainStatus)
			r.Route("/{userID}", func(r chi.Router) {
				r.Use(chiPathValue)
				r.Get("/", router.handler.RecommendGet)
			})
		})
		r.Route("/predict/{userID}/{movieID}", func(r chi.Router) {
			r.Use(chiPathValue)
			r.Get("/", router.handler.PredictGet)
		})

		// Bulk import and the raw training feed
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/import", router.handler.ImportPost)
		r.Get("/feed", router.handler.FeedGet)
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
