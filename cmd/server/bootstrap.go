// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/models"
)

// userStore is the subset of *database.DB used for the admin bootstrap.
type userStore interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// ensureAdmin creates the configured admin account on first start. An
// existing account with that username is left untouched, including its
// password and role. Without ADMIN_USERNAME and ADMIN_PASSWORD it does
// nothing; bulk upload is then unreachable until an admin is created.
func ensureAdmin(ctx context.Context, store userStore, hasher passwordHasher, sec *config.SecurityConfig) error {
	if sec.AdminUsername == "" || sec.AdminPassword == "" {
		logging.Warn().Msg("ADMIN_USERNAME/ADMIN_PASSWORD not set; no admin account bootstrapped")
		return nil
	}

	existing, err := store.GetUserByLogin(ctx, sec.AdminUsername)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			logging.Warn().Str("username", existing.Username).Msg("Configured admin username belongs to a non-admin account")
		}
		return nil
	case !errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := hasher.Hash(sec.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	email := sec.AdminEmail
	if email == "" {
		email = sec.AdminUsername + "@cinevault.local"
	}

	created, err := store.CreateUser(ctx, &models.User{
		Username:     sec.AdminUsername,
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("admin email %s already in use: %w", email, err)
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	logging.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("Admin account created")
	return nil
}
