// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/models"
	"github.com/tomtom215/cinevault/internal/validation"
)

// sanitizeLogValue escapes control characters so user input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// writeJSON marshals body with go-json and writes it with status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondJSON sends a success envelope.
func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, &models.APIResponse{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// respondError sends an error envelope. err, when non-nil, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	writeJSON(w, status, &models.APIResponse{
		Status:  models.StatusError,
		Message: message,
		Error:   &models.APIError{Code: code, Message: message},
	})
}

// respondValidationError sends a 400 VALIDATION_ERROR with per-field details.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	writeJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:  models.StatusError,
		Message: apiErr.Message,
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// respondItemError sends a 400 VALIDATION_ERROR for a normalized movie payload.
func respondItemError(w http.ResponseWriter, itemErr *ingest.ItemError) {
	details := map[string]interface{}{}
	if itemErr.Field != "" {
		details["field"] = itemErr.Field
	}
	writeJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:  models.StatusError,
		Message: itemErr.Reason,
		Error: &models.APIError{
			Code:    CodeValidation,
			Message: itemErr.Reason,
			Details: details,
		},
	})
}

// respondStoreError maps storage sentinels onto HTTP errors. what names the
// resource for NOT_FOUND and CONFLICT messages.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, what+" not found", nil)
	case errors.Is(err, database.ErrDuplicate):
		respondError(w, r, http.StatusConflict, CodeConflict, what+" already exists", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable, "Request cancelled", err)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeDatabase, "Database error", err)
	}
}

// decodeJSON reads the request body and unmarshals it into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// readBody returns the whole request body.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, ErrEmptyBody
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyBody
	}
	return data, nil
}

// respondDecodeError answers a decodeJSON or readBody failure.
func respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		respondError(w, r, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body too large", nil)
		return
	}
	if errors.Is(err, ErrEmptyBody) {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Request body is required", nil)
		return
	}
	respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", nil)
}
