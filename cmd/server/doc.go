// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package main is the entry point for the CineVault server.

CineVault is a movie catalog REST API. Administrators upload movies in bulk;
each batch is accepted immediately and drained in the background by a single
ingestion loop that validates, normalizes and upserts one record at a time.
Progress is available from the queue status endpoint and as a live websocket
feed.

# Process Tree

	cinevault (root)
	├── data-layer
	│   └── ingest-queue     closes and drains the queue on shutdown
	├── messaging-layer
	│   ├── websocket-hub    queue_status / queue_item events
	│   └── cache-janitor    expires movie cache entries
	└── api-layer
	    └── http-server

# Configuration

Koanf v2 layers, highest priority last:
  - built-in defaults
  - config.yaml (CONFIG_PATH overrides the search path)
  - environment variables

Required:
  - JWT_SECRET: 32+ characters

Commonly set:
  - HTTP_PORT (default 5000), ENVIRONMENT
  - BADGER_PATH or BADGER_IN_MEMORY=true
  - ADMIN_USERNAME, ADMIN_PASSWORD, ADMIN_EMAIL: bootstrap admin account
  - INGEST_MAX_BATCH_SIZE, INGEST_WRITES_PER_SECOND, INGEST_SHUTDOWN_TIMEOUT
  - LOG_LEVEL, LOG_FORMAT

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server stops taking new
connections, the ingest queue refuses new batches and drains what it already
accepted within INGEST_SHUTDOWN_TIMEOUT, then the database is closed.

# Example

	export JWT_SECRET=$(openssl rand -hex 32)
	export BADGER_PATH=./data
	export ADMIN_USERNAME=admin ADMIN_PASSWORD='change-me-1'
	./cinevault
*/
package main
