// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package models

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the standard envelope for all JSON API responses.
//
// Example success:
//
//	{
//	  "status": "success",
//	  "message": "Movies queued for processing",
//	  "data": {"accepted": 3, "queueLength": 3}
//	}
//
// Example error:
//
//	{
//	  "status": "error",
//	  "message": "movies must be a non-empty array",
//	  "error": {"code": "INVALID_BATCH", "message": "movies must be a non-empty array"}
//	}
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// SearchResponse adds pagination totals at the top level of the envelope.
type SearchResponse struct {
	APIResponse
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - INVALID_BATCH: bulk request without a non-empty movies array
//   - VALIDATION_ERROR: invalid input parameters
//   - DATABASE_ERROR: storage failure
//   - UNAUTHORIZED / FORBIDDEN: missing credentials or role
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string      `json:"status"`
	Message     string      `json:"message"`
	Timestamp   string      `json:"timestamp"`
	Environment string      `json:"environment"`
	Data        interface{} `json:"data,omitempty"`
}
