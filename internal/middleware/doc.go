// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package middleware provides HTTP middleware shared by every route.

  - RequestID: accepts or generates X-Request-ID and puts it in the logging context
  - RequestLogger: one zerolog line per request
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern

All three are plain func(http.Handler) http.Handler values for chi's Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

Response writers are wrapped with chi's WrapResponseWriter, which keeps
http.Hijacker working for the websocket upgrade route.
*/
package middleware
