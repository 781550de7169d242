// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

// Package authz provides role-based authorization using Casbin.
//
// The RBAC model and policy are embedded (model.conf, policy.csv). Subjects
// are roles taken from the JWT claims; objects are API resources such as
// "movies" or "movies/bulk"; actions are read, write and delete, derived from
// the HTTP method:
//
//	GET, HEAD, OPTIONS  -> read
//	POST, PUT, PATCH    -> write
//	DELETE              -> delete
//
// The admin role inherits every user permission (g, admin, user).
//
// Usage with chi, after authentication:
//
//	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{CacheEnabled: true, CacheTTL: time.Minute})
//	authzMW := authz.NewMiddleware(enforcer)
//	r.With(authzMW.Authorize("movies/bulk")).Post("/api/movies/bulk", h.BulkIngest)
//
// Decisions are cached per (role, object, action) in an LRU with TTL.
package authz
