// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

// Package logging is the zerolog-backed global logger for CineVault.
//
// main configures it once from LOG_LEVEL, LOG_FORMAT and LOG_CALLER:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
//
// # Request context
//
// The request ID middleware stores request_id and correlation_id in the
// request context and the auth middleware adds user_id. Ctx copies whichever
// are present onto the event:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Upsert failed")
//
// The ingest drain loop runs outside any request and logs through
// WithComponent("ingest") instead.
//
// # slog
//
// NewSlogLogger adapts the global logger to log/slog for sutureslog, so
// supervisor events land in the same stream as application logs.
package logging
