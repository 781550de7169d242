// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package auth provides JWT authentication and password hashing.

Key Components:

  - JWTManager: HS256 token issue and validation with {userId, username, role} claims
  - PasswordHasher: bcrypt hashing (cost 12) with a 6..72 byte length policy
  - Middleware.Authenticate: reads "Authorization: Bearer <token>" or the
    "token" cookie, answers 401 on failure, stores *Claims in the context
  - RequireRole: answers 403 unless the caller has the role (admin passes all)

Usage with chi:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	authMW := auth.NewMiddleware(jwtManager)

	r.Group(func(r chi.Router) {
	    r.Use(authMW.Authenticate)
	    r.With(auth.RequireRole(models.RoleAdmin)).Get("/api/admin/users", h.ListUsers)
	})

Handlers read the caller with ClaimsFromContext.

When security.jwt_secret is empty (development only) a random secret is
generated per process and a warning is logged.
*/
package auth
