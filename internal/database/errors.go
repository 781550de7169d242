// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package database

import (
	"errors"

	"github.com/timshannon/badgerhold/v4"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write would violate a uniqueness rule
	// (movie natural key, username, email, watchlist entry).
	ErrDuplicate = errors.New("record already exists")
)

// isNotFound reports whether err is badgerhold's not-found error.
func isNotFound(err error) bool {
	return errors.Is(err, badgerhold.ErrNotFound)
}
