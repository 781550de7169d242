// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total (method, endpoint, status_code)
  - api_request_duration_seconds (method, endpoint)
  - api_active_requests
  - api_rate_limit_hits_total (endpoint)

Bulk ingestion:
  - ingest_queue_length, ingest_processing
  - ingest_batches_accepted_total, ingest_batch_size
  - ingest_items_total (result, kind)
  - ingest_item_duration_seconds
  - ingest_drain_loops_started_total
  - ingest_panics_recovered_total (scope)

Storage, cache, auth, websocket and circuit breaker collectors follow the
same naming scheme.

# Usage

	start := time.Now()
	_, _, err := db.UpsertMovie(ctx, in)
	metrics.RecordDBOperation("upsert_movie", time.Since(start), err)
*/
package metrics
