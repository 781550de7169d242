// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cinevault/internal/models"
)

// memStore is an in-memory MovieStore keyed by natural key.
type memStore struct {
	mu      sync.Mutex
	movies  map[string]*models.Movie
	fail    error
	upserts int
}

func newMemStore() *memStore {
	return &memStore{movies: make(map[string]*models.Movie)}
}

func (s *memStore) UpsertMovie(_ context.Context, in *models.MovieInput) (*models.Movie, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upserts++
	if s.fail != nil {
		return nil, false, s.fail
	}

	key := in.NaturalKey()
	movie, ok := s.movies[key]
	if !ok {
		movie = &models.Movie{ID: uuid.NewString(), CreatedAt: time.Now()}
		s.movies[key] = movie
	}
	in.ApplyTo(movie)
	movie.UpdatedAt = time.Now()

	stored := *movie
	return &stored, !ok, nil
}

func (s *memStore) setFail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

func (s *memStore) byTitle(title string) *models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.Title == title {
			return m
		}
	}
	return nil
}

// gateProcessor blocks every item until the test releases it.
type gateProcessor struct {
	inner   ItemProcessor
	started chan uint64
	release chan struct{}
}

func newGateProcessor(inner ItemProcessor) *gateProcessor {
	return &gateProcessor{
		inner:   inner,
		started: make(chan uint64, 100),
		release: make(chan struct{}),
	}
}

func (g *gateProcessor) Process(ctx context.Context, item Item) (*models.Movie, error) {
	g.started <- item.Seq
	<-g.release
	return g.inner.Process(ctx, item)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu       sync.Mutex
	results  []ItemResult
	statuses []Snapshot
}

func (p *recordingPublisher) PublishItemResult(r ItemResult) {
	p.mu.Lock()
	p.results = append(p.results, r)
	p.mu.Unlock()
}

func (p *recordingPublisher) PublishStatus(s Snapshot) {
	p.mu.Lock()
	p.statuses = append(p.statuses, s)
	p.mu.Unlock()
}

func (p *recordingPublisher) snapshot() ([]ItemResult, []Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ItemResult(nil), p.results...), append([]Snapshot(nil), p.statuses...)
}

// validMovie returns a JSON record that passes validation.
func validMovie(title string) json.RawMessage {
	return movieJSON(map[string]interface{}{
		"title":       title,
		"description": "d",
		"releaseDate": "2020-01-01",
		"duration":    90,
		"rating":      7.5,
	})
}

func movieJSON(fields map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(fields)
	if err != nil {
		panic(fmt.Sprintf("marshal test movie: %v", err))
	}
	return data
}

func waitIdle(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func (q *Queue) loopStartCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loopStarts
}
