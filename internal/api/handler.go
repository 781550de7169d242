// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/cache"
	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/models"
	ws "github.com/tomtom215/cinevault/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health check
//   - handlers_auth.go: signup, login, current user
//   - handlers_movies.go: movie CRUD, list and search
//   - handlers_bulk.go: bulk ingestion, queue status, queue websocket
//   - handlers_watchlist.go: per-user watchlist
//   - handlers_admin.go: user listing
type Handler struct {
	db         *database.DB
	queue      *ingest.Queue
	processor  *ingest.Processor
	config     *config.Config
	jwtManager *auth.JWTManager
	hasher     *auth.PasswordHasher
	wsHub      *ws.Hub
	movies     *cache.LRU[*models.Movie]
	startTime  time.Time
}

// Deps groups the collaborators a Handler needs.
type Deps struct {
	DB         *database.DB
	Queue      *ingest.Queue
	Processor  *ingest.Processor
	JWTManager *auth.JWTManager
	WSHub      *ws.Hub

	// Hasher defaults to bcrypt at auth.BcryptCost.
	Hasher *auth.PasswordHasher
}

// NewHandler creates an API handler. The movie lookup cache is sized from
// cfg.Cache.
//
//	handler := api.NewHandler(cfg, api.Deps{DB: db, Queue: queue, ...})
//	router := api.NewRouter(handler, authMw, authzMw)
//	srv.Handler = router.Setup()
func NewHandler(cfg *config.Config, deps Deps) *Handler {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewPasswordHasher(auth.BcryptCost)
	}

	return &Handler{
		db:         deps.DB,
		queue:      deps.Queue,
		processor:  deps.Processor,
		config:     cfg,
		jwtManager: deps.JWTManager,
		hasher:     hasher,
		wsHub:      deps.WSHub,
		movies:     cache.New[*models.Movie]("movies", cfg.Cache.MovieCapacity, cfg.Cache.MovieTTL),
		startTime:  time.Now(),
	}
}

// ClearCache drops every cached movie.
func (h *Handler) ClearCache() {
	h.movies.Clear()
}

// CleanupExpired drops expired movie cache entries and returns how many
// were removed. It lets the handler serve as the cache janitor's target.
func (h *Handler) CleanupExpired() int {
	return h.movies.CleanupExpired()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts only origins listed in security.cors_origins.
// Browsers always send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// pageSizes returns the configured default and maximum page sizes.
func (h *Handler) pageSizes() (defaultSize, maxSize int) {
	defaultSize, maxSize = h.config.API.DefaultPageSize, h.config.API.MaxPageSize
	if defaultSize <= 0 {
		defaultSize = 12
	}
	if maxSize <= 0 {
		maxSize = 100
	}
	return defaultSize, maxSize
}
