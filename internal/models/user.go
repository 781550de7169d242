// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package models

import "time"

// Role constants. These align with the Casbin policy in internal/authz/policy.csv.
const (
	// RoleUser is the default role: read movies, manage own watchlist.
	RoleUser = "user"

	// RoleAdmin writes movies, submits bulk batches and lists users. Inherits user.
	RoleAdmin = "admin"
)

// ValidRoles contains all valid role names.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// WatchlistEntry links a user to a saved movie.
type WatchlistEntry struct {
	UserID  string    `json:"userId"`
	MovieID string    `json:"movieId"`
	AddedAt time.Time `json:"addedAt"`
}

// WatchlistKey is the storage key of an entry.
func WatchlistKey(userID, movieID string) string {
	return userID + ":" + movieID
}
