// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/authz"
	"github.com/tomtom215/cinevault/internal/middleware"
	"github.com/tomtom215/cinevault/internal/models"
)

// Authorization objects; they must match the embedded Casbin policy.
const (
	objMovies     = "movies"
	objMovieBulk  = "movies/bulk"
	objMovieQueue = "movies/queue"
	objWatchlist  = "watchlist"
	objUsers      = "users"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, authn *auth.Middleware, authzMw *authz.Middleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		authn:         authn,
		authz:         authzMw,
	}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(router.chiMiddleware.BodyLimit())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeBadRequest, "Method not allowed", nil)
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.With(router.authn.Authenticate).Get("/me", h.Me)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Use(router.authn.Authenticate)

			r.With(router.authz.Authorize(objMovieBulk)).Post("/bulk", h.BulkUpload)
			r.Route("/queue", func(r chi.Router) {
				r.Use(router.authz.Authorize(objMovieQueue))
				r.Get("/status", h.QueueStatus)
				r.Get("/ws", h.QueueWebSocket)
			})

			r.Group(func(r chi.Router) {
				r.Use(router.authz.Authorize(objMovies))
				r.Get("/", h.ListMovies)
				r.Get("/search", h.SearchMovies)
				r.Post("/", h.CreateMovie)
				r.Get("/{id}", h.GetMovie)
				r.Put("/{id}", h.UpdateMovie)
				r.Delete("/{id}", h.DeleteMovie)
			})
		})

		r.Route("/watchlist", func(r chi.Router) {
			r.Use(router.authn.Authenticate)
			r.Use(router.authz.Authorize(objWatchlist))
			r.Get("/", h.GetWatchlist)
			r.Post("/{movieId}", h.AddToWatchlist)
			r.Delete("/{movieId}", h.RemoveFromWatchlist)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(router.authn.Authenticate)
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.With(router.authz.Authorize(objUsers)).Get("/users", h.ListUsers)
		})
	})

	return r
}
