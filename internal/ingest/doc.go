// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package ingest implements bulk movie ingestion: an in-process FIFO queue with
a single background drain loop, and the processor that validates, normalizes
and upserts each record.

# Queue

Enqueue appends a batch and, if the queue is idle, starts the drain loop in a
new goroutine. It never waits for processing:

	receipt, err := queue.Enqueue(records) // {accepted, queueLength}

The drain loop pops one item at a time, hands it to the ItemProcessor and
counts the outcome in Stats (processed or failed, never both). A failing or
panicking item is counted and the loop moves on. When nothing is pending
the loop clears the processing flag under the queue mutex and exits; the
next Enqueue starts a new loop.

Status returns {queueLength, processing, stats}. RecentFailures keeps a
bounded list of the latest failures with the record title, field and reason.

Queue state lives in memory only. A restart loses pending items and
counters.

# Processor

Records are decoded into one canonical models.MovieInput before validation:

  - duration and rating accept JSON numbers or numeric strings
  - streamingLinks accepts null, an array, or a string holding a JSON array
  - releaseDate accepts YYYY-MM-DD or RFC 3339 and is stored as YYYY-MM-DD

Validation uses go-playground/validator tags plus the configured duration
bound. Writes pass through an optional rate limiter (golang.org/x/time/rate)
and a circuit breaker (sony/gobreaker) before reaching the store.

Failures are *ItemError values; classify them with errors.Is against
ErrValidation or ErrStorage.
*/
package ingest
