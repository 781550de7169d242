// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

The API layer keeps recently read movies keyed by ID so repeated detail
lookups skip the store:

	movies := cache.New[*models.Movie]("movies", cfg.Cache.Capacity, cfg.Cache.TTL)

	if m, ok := movies.Get(id); ok {
	    return m
	}
	m, err := db.GetMovie(ctx, id)
	...
	movies.Set(id, m)

# Invalidation

Entries expire after the configured TTL, checked lazily on Get. Handlers that
update or delete a movie call Delete for its ID. Bulk ingestion does not touch
the cache; an upserted movie becomes visible once its cached copy expires.

# Metrics

Hits, misses, evictions and size are exported with a cache_type label equal
to the name given to New.
*/
package cache
