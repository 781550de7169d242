// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
movies.go - Movie Catalog Operations

Movies are stored under their UUID. A second record type, movieKey, maps the
natural key (normalized title + release date) to the UUID so that bulk
ingestion can upsert without a secondary index. Both records are written in
the same Badger transaction.

Key Operations:
  - UpsertMovie: insert or update by natural key (bulk ingestion path)
  - CreateMovie / UpdateMovie / DeleteMovie: single-movie CRUD
  - SearchMovies / ListMovies: case-insensitive substring search, sorted by title
*/

package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tomtom215/cinevault/internal/models"
)

// movieKey is the natural-key lookup record.
type movieKey struct {
	NaturalKey string
	MovieID    string
}

// UpsertMovie inserts the movie or, if one with the same natural key exists,
// updates it in place keeping its ID and CreatedAt. The bool result is true
// when a new movie was created.
func (db *DB) UpsertMovie(ctx context.Context, in *models.MovieInput) (*models.Movie, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	now := time.Now().UTC()
	nk := in.NaturalKey()
	var movie models.Movie
	created := false

	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		var key movieKey
		err := db.store.TxGet(tx, nk, &key)
		switch {
		case err == nil:
			if err := db.store.TxGet(tx, key.MovieID, &movie); err != nil {
				if !isNotFound(err) {
					return err
				}
				// Lookup outlived its movie; reuse the ID.
				movie = models.Movie{ID: key.MovieID, CreatedAt: now}
				created = true
			}
		case isNotFound(err):
			movie = models.Movie{ID: uuid.NewString(), CreatedAt: now}
			created = true
		default:
			return err
		}

		in.ApplyTo(&movie)
		movie.UpdatedAt = now

		if err := db.store.TxUpsert(tx, movie.ID, &movie); err != nil {
			return err
		}
		return db.store.TxUpsert(tx, nk, &movieKey{NaturalKey: nk, MovieID: movie.ID})
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert movie %q: %w", in.Title, err)
	}

	return &movie, created, nil
}

// CreateMovie inserts a new movie. Returns ErrDuplicate if a movie with the
// same title and release date already exists.
func (db *DB) CreateMovie(ctx context.Context, in *models.MovieInput) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	now := time.Now().UTC()
	nk := in.NaturalKey()
	movie := models.Movie{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(&movie)

	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		var key movieKey
		if err := db.store.TxGet(tx, nk, &key); err == nil {
			return ErrDuplicate
		} else if !isNotFound(err) {
			return err
		}

		if err := db.store.TxInsert(tx, movie.ID, &movie); err != nil {
			return err
		}
		return db.store.TxInsert(tx, nk, &movieKey{NaturalKey: nk, MovieID: movie.ID})
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	return &movie, nil
}

// GetMovie returns the movie with the given ID or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var movie models.Movie
	if err := db.store.Get(id, &movie); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

// UpdateMovie replaces the content of an existing movie. Changing the title
// or release date onto another movie's natural key returns ErrDuplicate.
func (db *DB) UpdateMovie(ctx context.Context, id string, in *models.MovieInput) (*models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var movie models.Movie
	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		if err := db.store.TxGet(tx, id, &movie); err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		oldKey := movie.NaturalKey()
		newKey := in.NaturalKey()
		if oldKey != newKey {
			var existing movieKey
			err := db.store.TxGet(tx, newKey, &existing)
			switch {
			case err == nil && existing.MovieID != id:
				return ErrDuplicate
			case err != nil && !isNotFound(err):
				return err
			}
			if err := db.store.TxDelete(tx, oldKey, &movieKey{}); err != nil && !isNotFound(err) {
				return err
			}
			if err := db.store.TxUpsert(tx, newKey, &movieKey{NaturalKey: newKey, MovieID: id}); err != nil {
				return err
			}
		}

		in.ApplyTo(&movie)
		movie.UpdatedAt = time.Now().UTC()
		return db.store.TxUpdate(tx, id, &movie)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	return &movie, nil
}

// DeleteMovie removes a movie, its natural-key lookup and any watchlist
// entries that reference it.
func (db *DB) DeleteMovie(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	err := db.store.Badger().Update(func(tx *badger.Txn) error {
		var movie models.Movie
		if err := db.store.TxGet(tx, id, &movie); err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := db.store.TxDelete(tx, id, &models.Movie{}); err != nil {
			return err
		}
		if err := db.store.TxDelete(tx, movie.NaturalKey(), &movieKey{}); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if err := db.store.DeleteMatching(&models.WatchlistEntry{}, badgerhold.Where("MovieID").Eq(id)); err != nil {
		return fmt.Errorf("failed to delete watchlist entries for movie: %w", err)
	}
	return nil
}

// SearchMovies returns one page of movies whose title or description contains
// query (case-insensitive), sorted by title, plus the total number of matches.
// An empty query matches every movie. page is 1-based.
func (db *DB) SearchMovies(ctx context.Context, query string, page, limit int) ([]models.Movie, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	criteria, err := searchCriteria(query)
	if err != nil {
		return nil, 0, err
	}
	total, err := db.store.Count(&models.Movie{}, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	pageQuery, _ := searchCriteria(query)
	pageQuery = pageQuery.SortBy("Title")
	if page < 1 {
		page = 1
	}
	if limit > 0 {
		if offset := (page - 1) * limit; offset > 0 {
			pageQuery = pageQuery.Skip(offset)
		}
		pageQuery = pageQuery.Limit(limit)
	}

	var movies []models.Movie
	if err := db.store.Find(&movies, pageQuery); err != nil {
		return nil, 0, fmt.Errorf("failed to search movies: %w", err)
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	return movies, int(total), nil
}

// ListMovies returns one page of all movies sorted by title.
func (db *DB) ListMovies(ctx context.Context, page, limit int) ([]models.Movie, int, error) {
	return db.SearchMovies(ctx, "", page, limit)
}

// CountMovies returns the number of stored movies.
func (db *DB) CountMovies(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := db.store.Count(&models.Movie{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return int(count), nil
}

// searchCriteria builds a fresh query; badgerhold queries are mutated by
// SortBy/Skip/Limit so count and page queries cannot share one.
func searchCriteria(query string) (*badgerhold.Query, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return badgerhold.Where("ID").Ne(""), nil
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, fmt.Errorf("invalid search query: %w", err)
	}
	return badgerhold.Where("Title").RegExp(re).Or(badgerhold.Where("Description").RegExp(re)), nil
}
