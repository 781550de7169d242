// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import "errors"

// Error codes carried in the error envelope.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeInvalidBatch = "INVALID_BATCH"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
)

var (
	// ErrEmptyBody is returned when a request that needs a JSON body has none.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge is returned when a body exceeds server.max_body_bytes.
	ErrBodyTooLarge = errors.New("request body too large")
)
