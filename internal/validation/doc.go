// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

// Package validation wraps go-playground/validator v10 behind a singleton.
//
// Struct fields are reported by their JSON names, so a failure on
// MovieInput.ReleaseDate surfaces as "releaseDate is required". Nested
// slices use the full path ("streamingLinks[1].url").
//
//	type SignupRequest struct {
//	    Username string `json:"username" validate:"required,min=3,max=30,username"`
//	    Email    string `json:"email" validate:"required,email"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
//
// ValidateField covers limits known only at runtime, such as the configured
// maximum movie duration.
package validation
