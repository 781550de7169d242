// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

// Package config loads CineVault configuration with Koanf v2.
//
// Sources are layered, later ones winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: CONFIG_PATH, ./config.yaml, /etc/cinevault/config.yaml
//  3. Environment variables, through an explicit name mapping
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	  environment: production
//	security:
//	  jwt_secret: "<at least 32 characters>"
//	  cors_origins: ["https://cinevault.example.com"]
//	ingest:
//	  max_duration: 600
//	  writes_per_second: 50
//
// The same settings via environment: HTTP_PORT, ENVIRONMENT, JWT_SECRET,
// CORS_ORIGINS (comma separated), INGEST_MAX_DURATION, INGEST_WRITES_PER_SECOND.
//
// LoadWithKoanf validates the result before returning it.
package config
