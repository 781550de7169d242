// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/models"
)

// setupTestDB opens an in-memory store that is closed when the test ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{InMemory: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func movieInput(title, date string) *models.MovieInput {
	return &models.MovieInput{
		Title:       title,
		Description: "A film called " + title,
		ReleaseDate: date,
		Duration:    100,
		Rating:      7,
	}
}

func TestNew_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	db, err := New(&config.DatabaseConfig{Path: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if _, err := db.CreateMovie(ctx, movieInput("Persisted", "2001-01-01")); err != nil {
		t.Fatalf("CreateMovie() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(&config.DatabaseConfig{Path: dir})
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer reopened.Close()

	count, err := reopened.CountMovies(ctx)
	if err != nil {
		t.Fatalf("CountMovies() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountMovies() after reopen = %d, want 1", count)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := db.Ping(ctx); err == nil {
		t.Error("Ping() with cancelled context should fail")
	}
}
