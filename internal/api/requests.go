// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login. EmailOrUsername matches
// either the username or the email address, case-insensitively.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// BulkRequest is the body of POST /api/movies/bulk. Movies stays raw so each
// record is parsed independently by the drain loop and a bad record cannot
// reject the whole batch.
type BulkRequest struct {
	Movies json.RawMessage `json:"movies"`
}

// records splits Movies into individual records. ok is false when Movies is
// absent or is not a JSON array.
func (b *BulkRequest) records() ([]json.RawMessage, bool) {
	trimmed := strings.TrimSpace(string(b.Movies))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(b.Movies, &records); err != nil {
		return nil, false
	}
	return records, true
}

// PageRequest holds pagination query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// parsePage reads page and limit from the query string. Missing or
// unparseable values fall back to page 1 and the default size; limit is
// clamped to maxSize.
func parsePage(r *http.Request, defaultSize, maxSize int) PageRequest {
	q := r.URL.Query()
	req := PageRequest{
		Page:  getIntParam(q.Get("page"), 1),
		Limit: getIntParam(q.Get("limit"), defaultSize),
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultSize
	}
	if maxSize > 0 && req.Limit > maxSize {
		req.Limit = maxSize
	}
	return req
}

func getIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// totalPages rounds total/limit up.
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
