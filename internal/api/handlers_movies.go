// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/models"
)

// ListMovies returns one page of the catalog sorted by title.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	defaultSize, maxSize := h.pageSizes()
	page := parsePage(r, defaultSize, maxSize)

	movies, total, err := h.db.ListMovies(r.Context(), page.Page, page.Limit)
	if err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}
	respondPage(w, movies, total, page)
}

// SearchMovies matches q against titles and descriptions. An empty q lists
// the whole catalog.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	defaultSize, maxSize := h.pageSizes()
	page := parsePage(r, defaultSize, maxSize)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	movies, total, err := h.db.SearchMovies(r.Context(), query, page.Page, page.Limit)
	if err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}
	respondPage(w, movies, total, page)
}

// GetMovie returns one movie, reading through the lookup cache.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if movie, ok := h.movies.Get(id); ok {
		respondJSON(w, http.StatusOK, "", map[string]interface{}{"movie": movie})
		return
	}

	movie, err := h.db.GetMovie(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}
	h.movies.Set(id, movie)
	respondJSON(w, http.StatusOK, "", map[string]interface{}{"movie": movie})
}

// CreateMovie adds a single movie. The body goes through the same
// normalization and validation as a bulk record; a movie with the same
// title and release date already present is a conflict.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	in, ok := h.normalizeBody(w, r)
	if !ok {
		return
	}

	movie, err := h.db.CreateMovie(r.Context(), in)
	if err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}

	logging.Ctx(r.Context()).Info().Str("movie_id", movie.ID).Str("title", movie.Title).Msg("Movie created")
	respondJSON(w, http.StatusCreated, "Movie created successfully", map[string]interface{}{"movie": movie})
}

// UpdateMovie replaces a movie's fields.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := h.normalizeBody(w, r)
	if !ok {
		return
	}

	movie, err := h.db.UpdateMovie(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}
	h.movies.Delete(id)

	logging.Ctx(r.Context()).Info().Str("movie_id", id).Msg("Movie updated")
	respondJSON(w, http.StatusOK, "Movie updated successfully", map[string]interface{}{"movie": movie})
}

// DeleteMovie removes a movie and every watchlist entry pointing at it.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.db.DeleteMovie(r.Context(), id); err != nil {
		respondStoreError(w, r, err, "Movie")
		return
	}
	h.movies.Delete(id)

	logging.Ctx(r.Context()).Info().Str("movie_id", id).Msg("Movie deleted")
	respondJSON(w, http.StatusOK, "Movie deleted successfully", nil)
}

// normalizeBody reads a movie record and runs it through the ingest
// processor's normalization. It writes the error response itself and
// reports false on failure.
func (h *Handler) normalizeBody(w http.ResponseWriter, r *http.Request) (*models.MovieInput, bool) {
	raw, err := readBody(r)
	if err != nil {
		respondDecodeError(w, r, err)
		return nil, false
	}

	in, err := h.processor.Normalize(raw)
	if err != nil {
		var itemErr *ingest.ItemError
		if errors.As(err, &itemErr) {
			respondItemError(w, itemErr)
			return nil, false
		}
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid movie record", err)
		return nil, false
	}
	return in, true
}

// respondPage writes a paginated movie list with top-level totals.
func respondPage(w http.ResponseWriter, movies []models.Movie, total int, page PageRequest) {
	if movies == nil {
		movies = []models.Movie{}
	}
	writeJSON(w, http.StatusOK, &models.SearchResponse{
		APIResponse: models.APIResponse{
			Status: models.StatusSuccess,
			Data:   map[string]interface{}{"movies": movies},
		},
		Total:      total,
		Page:       page.Page,
		TotalPages: totalPages(total, page.Limit),
	})
}
