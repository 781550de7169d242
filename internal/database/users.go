// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tomtom215/cinevault/internal/models"
)

// userRecord is the stored form of models.User. models.User hides the
// password hash from JSON, which is also the storage encoding.
type userRecord struct {
	ID           string
	Username     string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// userLogin maps a lower-cased username or email to a user ID.
type userLogin struct {
	Login  string
	UserID string
}

func usernameKey(username string) string {
	return "username:" + strings.ToLower(strings.TrimSpace(username))
}

func emailKey(email string) string {
	return "email:" + strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new user. Username and email are unique
// case-insensitively; a clash returns ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !models.IsValidRole(u.Role) {
		return nil, fmt.Errorf("invalid role %q", u.Role)
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	rec := &userRecord{
		ID:           u.ID,
		Username:     strings.TrimSpace(u.Username),
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range []string{usernameKey(rec.Username), emailKey(rec.Email)} {
			var existing userLogin
			err := db.store.TxGet(tx, key, &existing)
			if err == nil {
				return ErrDuplicate
			}
			if !isNotFound(err) {
				return err
			}
		}

		if err := db.store.TxInsert(tx, rec.ID, rec); err != nil {
			if errors.Is(err, badgerhold.ErrKeyExists) {
				return ErrDuplicate
			}
			return err
		}
		if err := db.store.TxInsert(tx, usernameKey(rec.Username), &userLogin{Login: usernameKey(rec.Username), UserID: rec.ID}); err != nil {
			return err
		}
		return db.store.TxInsert(tx, emailKey(rec.Email), &userLogin{Login: emailKey(rec.Email), UserID: rec.ID})
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return rec.toModel(), nil
}

// GetUserByID returns the user with the given ID or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec userRecord
	if err := db.store.Get(id, &rec); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return rec.toModel(), nil
}

// GetUserByLogin resolves a username or an email address to a user.
func (db *DB) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, key := range []string{usernameKey(login), emailKey(login)} {
		var lookup userLogin
		err := db.store.Get(key, &lookup)
		if err == nil {
			return db.GetUserByID(ctx, lookup.UserID)
		}
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}
	return nil, ErrNotFound
}

// ListUsers returns every user ordered by creation time.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []userRecord
	if err := db.store.Find(&records, badgerhold.Where("ID").Ne("").SortBy("CreatedAt")); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, len(records))
	for i := range records {
		users[i] = *records[i].toModel()
	}
	return users, nil
}

// CountUsers returns the number of registered users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := db.store.Count(&userRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(count), nil
}
