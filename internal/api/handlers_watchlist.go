// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/models"
)

// GetWatchlist returns the caller's saved movies in the order they were added.
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
		return
	}

	movies, err := h.db.ListWatchlist(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, r, err, "Watchlist")
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	respondJSON(w, http.StatusOK, "", map[string]interface{}{"movies": movies})
}

// AddToWatchlist saves a movie to the caller's watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
		return
	}
	movieID := chi.URLParam(r, "movieId")

	entry, err := h.db.AddToWatchlist(r.Context(), claims.UserID, movieID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Movie not found", nil)
		return
	case errors.Is(err, database.ErrDuplicate):
		respondError(w, r, http.StatusConflict, CodeConflict, "Movie already in watchlist", nil)
		return
	case err != nil:
		respondStoreError(w, r, err, "Watchlist entry")
		return
	}

	respondJSON(w, http.StatusCreated, "Movie added to watchlist", map[string]interface{}{"entry": entry})
}

// RemoveFromWatchlist deletes a movie from the caller's watchlist.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
		return
	}
	movieID := chi.URLParam(r, "movieId")

	if err := h.db.RemoveFromWatchlist(r.Context(), claims.UserID, movieID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "Movie not in watchlist", nil)
			return
		}
		respondStoreError(w, r, err, "Watchlist entry")
		return
	}
	respondJSON(w, http.StatusOK, "Movie removed from watchlist", nil)
}
