// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tomtom215/cinevault/internal/models"
)

// AddToWatchlist saves a movie to a user's watchlist. The movie must exist
// (ErrNotFound) and may only be added once (ErrDuplicate).
func (db *DB) AddToWatchlist(ctx context.Context, userID, movieID string) (*models.WatchlistEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := &models.WatchlistEntry{
		UserID:  userID,
		MovieID: movieID,
		AddedAt: time.Now().UTC(),
	}

	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		var movie models.Movie
		if err := db.store.TxGet(tx, movieID, &movie); err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := db.store.TxInsert(tx, models.WatchlistKey(userID, movieID), entry); err != nil {
			if errors.Is(err, badgerhold.ErrKeyExists) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}

	return entry, nil
}

// RemoveFromWatchlist deletes a watchlist entry or returns ErrNotFound.
func (db *DB) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := db.store.Delete(models.WatchlistKey(userID, movieID), &models.WatchlistEntry{}); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

// ListWatchlist returns the user's saved movies in the order they were added.
func (db *DB) ListWatchlist(ctx context.Context, userID string) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []models.WatchlistEntry
	if err := db.store.Find(&entries, badgerhold.Where("UserID").Eq(userID).SortBy("AddedAt")); err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	movies := make([]models.Movie, 0, len(entries))
	for _, entry := range entries {
		var movie models.Movie
		if err := db.store.Get(entry.MovieID, &movie); err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to load watchlist movie: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}
