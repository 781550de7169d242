// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package models defines the data structures shared across CineVault.

# Catalog

  - Movie, StreamingLink: stored catalog entries
  - MovieInput: normalized write shape, validated with go-playground/validator tags

# Accounts

  - User: account with role (user or admin)
  - WatchlistEntry: a user's saved movie

# API Envelope

  - APIResponse: {status, message, data, error}
  - SearchResponse: envelope plus total, page and totalPages
  - APIError: {code, message, details}

JSON field names follow the web client's camelCase convention.
*/
package models
