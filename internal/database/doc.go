// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

// Package database provides data access for CineVault on top of an embedded
// Badger v4 key-value store, using badgerhold for typed records and queries.
//
// # Architecture
//
//   - database.go: store lifecycle (open, close, ping) and Badger log routing
//   - movies.go: movie CRUD, natural-key upsert, search
//   - users.go: accounts with case-insensitive unique username and email
//   - watchlist.go: per-user saved movies
//   - errors.go: ErrNotFound and ErrDuplicate sentinels
//
// Records are encoded as JSON with github.com/goccy/go-json.
//
// # Consistency
//
// Writes that maintain a lookup record alongside the primary record run in a
// single Badger transaction and are serialized by a store mutex, so the
// natural-key upsert used by bulk ingestion is safe against concurrent
// single-movie writes from the API.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	movie, created, err := db.UpsertMovie(ctx, input)
package database
