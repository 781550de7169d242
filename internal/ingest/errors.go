// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBatch is returned synchronously when a batch is empty or malformed.
	ErrInvalidBatch = errors.New("movies must be a non-empty array")

	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("ingestion queue is closed")

	// ErrValidation classifies per-item validation failures (errors.Is).
	ErrValidation = errors.New("validation error")

	// ErrStorage classifies per-item storage failures (errors.Is).
	ErrStorage = errors.New("storage error")
)

// ErrorKind names the class of a per-item failure.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindStorage    ErrorKind = "storage"
	// KindInternal marks a recovered panic while processing the item.
	KindInternal ErrorKind = "internal"
)

// ItemError describes why one queued record failed: which record, which
// field and what was wrong.
type ItemError struct {
	Record string
	Field  string
	Reason string
	Kind   ErrorKind
	Err    error
}

func (e *ItemError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s error for movie %q: %s: %s", e.Kind, e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s error for movie %q: %s", e.Kind, e.Record, e.Reason)
}

// Is lets callers classify with errors.Is(err, ErrValidation) or ErrStorage.
func (e *ItemError) Is(target error) bool {
	switch e.Kind {
	case KindValidation:
		return target == ErrValidation
	case KindStorage:
		return target == ErrStorage
	}
	return false
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func validationError(record, field, reason string) *ItemError {
	return &ItemError{Record: record, Field: field, Reason: reason, Kind: KindValidation}
}

func storageError(record string, err error) *ItemError {
	return &ItemError{Record: record, Reason: err.Error(), Kind: KindStorage, Err: err}
}
