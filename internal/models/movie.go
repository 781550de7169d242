// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
movie.go - Movie Catalog Models

Key Structures:
  - Movie: a stored catalog entry as returned by the API
  - StreamingLink: where a movie can be watched
  - MovieInput: the validated, normalized write shape shared by the
    single-movie handlers and the bulk ingestion queue

Identity:
  - ID is a UUID assigned on first insert and never changes.
  - The natural key (lower-cased, whitespace-collapsed title plus the
    release date) identifies "the same movie" across bulk ingests.
*/

package models

import (
	"strings"
	"time"
)

// ReleaseDateLayout is the canonical release date format.
const ReleaseDateLayout = "2006-01-02"

// StreamingLink is a platform/URL pair for a movie.
type StreamingLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

// Movie is a stored catalog entry.
type Movie struct {
	ID             string          `json:"_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ReleaseDate    string          `json:"releaseDate"`
	Duration       int             `json:"duration"`
	Rating         float64         `json:"rating"`
	Poster         string          `json:"poster,omitempty"`
	TrailerID      string          `json:"trailerId,omitempty"`
	StreamingLinks []StreamingLink `json:"streamingLinks"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NaturalKey returns the key used to match re-ingested records.
func (m *Movie) NaturalKey() string {
	return NaturalKey(m.Title, m.ReleaseDate)
}

// MovieInput is the normalized write shape. The duration upper bound is
// configurable and checked separately.
type MovieInput struct {
	Title          string          `json:"title" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	ReleaseDate    string          `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Duration       int             `json:"duration" validate:"gte=1"`
	Rating         float64         `json:"rating" validate:"gte=0,lte=10"`
	Poster         string          `json:"poster"`
	TrailerID      string          `json:"trailerId"`
	StreamingLinks []StreamingLink `json:"streamingLinks" validate:"omitempty,dive"`
}

// NaturalKey returns the key the input would be stored under.
func (in *MovieInput) NaturalKey() string {
	return NaturalKey(in.Title, in.ReleaseDate)
}

// ApplyTo copies the input fields onto m, leaving identity and timestamps alone.
func (in *MovieInput) ApplyTo(m *Movie) {
	m.Title = in.Title
	m.Description = in.Description
	m.ReleaseDate = in.ReleaseDate
	m.Duration = in.Duration
	m.Rating = in.Rating
	m.Poster = in.Poster
	m.TrailerID = in.TrailerID
	m.StreamingLinks = append([]StreamingLink(nil), in.StreamingLinks...)
	if m.StreamingLinks == nil {
		m.StreamingLinks = []StreamingLink{}
	}
}

// NaturalKey builds the natural key from a title and a YYYY-MM-DD date.
//
//	NaturalKey("  The  Matrix ", "1999-03-31") == "the matrix|1999-03-31"
func NaturalKey(title, releaseDate string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " ")) + "|" + releaseDate
}
