// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package api provides the HTTP surface of CineVault: chi routing, middleware
and JSON handlers for auth, movies, bulk ingestion, the watchlist and user
administration.

# Envelope

Every JSON response uses models.APIResponse:

	{"status":"success","message":"...","data":{...}}
	{"status":"error","message":"...","error":{"code":"NOT_FOUND","message":"...","details":{...}}}

List and search responses add top-level total, page and totalPages.

# Middleware

Applied globally, in order: request ID, real IP, request logging, panic
recovery, CORS (go-chi/cors) and a body size cap. Routes under /api add a
per-IP rate limit (go-chi/httprate) and Prometheus request metrics.
Protected routes run auth.Middleware.Authenticate followed by
authz.Middleware.Authorize for the route's object.

# Bulk ingestion

POST /api/movies/bulk checks only the batch shape (a non-empty movies array
within ingest.max_batch_size), hands the records to the ingest queue and
answers 202 at once. Per-record outcomes are visible through
GET /api/movies/queue/status and the /api/movies/queue/ws stream.
*/
package api
