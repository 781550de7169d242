// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cinevault/internal/metrics"
	"github.com/tomtom215/cinevault/internal/models"
	"github.com/tomtom215/cinevault/internal/validation"
)

// MovieStore is the storage collaborator: upsert by natural key.
type MovieStore interface {
	UpsertMovie(ctx context.Context, in *models.MovieInput) (*models.Movie, bool, error)
}

// ProcessorConfig holds the processing policy values.
type ProcessorConfig struct {
	// MaxDuration is the upper bound for duration in minutes.
	MaxDuration int

	// WritesPerSecond paces storage writes; 0 means unlimited.
	WritesPerSecond float64
	WriteBurst      int

	// BreakerFailures consecutive storage failures open the breaker for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultProcessorConfig returns the defaults used when no configuration is given.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		MaxDuration:     600,
		WriteBurst:      1,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// Processor validates, normalizes and stores one record. It holds no queue
// state and is safe for concurrent use by the API handlers.
type Processor struct {
	store       MovieStore
	maxDuration int
	limiter     *rate.Limiter
	breaker     *storeBreaker
}

// NewProcessor creates a processor writing to store.
func NewProcessor(store MovieStore, cfg ProcessorConfig) *Processor {
	if cfg.MaxDuration < 1 {
		cfg.MaxDuration = DefaultProcessorConfig().MaxDuration
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultProcessorConfig().BreakerFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = DefaultProcessorConfig().BreakerTimeout
	}

	p := &Processor{
		store:       store,
		maxDuration: cfg.MaxDuration,
		breaker:     newStoreBreaker("movie-store", cfg.BreakerFailures, cfg.BreakerTimeout),
	}
	if cfg.WritesPerSecond > 0 {
		burst := cfg.WriteBurst
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.WritesPerSecond), burst)
	}
	return p
}

// Process handles one queued item: normalize, validate, upsert. All
// validation happens before any write. Failures are *ItemError.
func (p *Processor) Process(ctx context.Context, item Item) (*models.Movie, error) {
	in, err := p.Normalize(item.Payload)
	if err != nil {
		return nil, err
	}
	return p.write(ctx, in)
}

// Normalize parses and validates a raw record into a MovieInput without
// writing it. The single-movie API handlers use it directly.
func (p *Processor) Normalize(raw []byte) (*models.MovieInput, error) {
	in, perr := parsePayload(raw)
	if perr != nil {
		return nil, perr
	}
	if verr := p.Validate(in); verr != nil {
		return nil, verr
	}
	return in, nil
}

// Validate applies the struct rules and the configured duration bound.
func (p *Processor) Validate(in *models.MovieInput) error {
	record := recordName(in.Title)

	if verr := validation.ValidateStruct(in); verr != nil {
		first := verr.First()
		return validationError(record, first.Field(), first.Error())
	}
	if ferr := validation.ValidateField("duration", in.Duration, fmt.Sprintf("lte=%d", p.maxDuration)); ferr != nil {
		return validationError(record, ferr.Field(), ferr.Error())
	}
	return nil
}

// BreakerState reports the storage circuit breaker state.
func (p *Processor) BreakerState() string {
	return p.breaker.state()
}

func (p *Processor) write(ctx context.Context, in *models.MovieInput) (*models.Movie, error) {
	record := recordName(in.Title)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, storageError(record, fmt.Errorf("write pacing: %w", err))
		}
	}

	movie, err := p.breaker.execute(func() (*models.Movie, error) {
		start := time.Now()
		movie, _, err := p.store.UpsertMovie(ctx, in)
		metrics.RecordDBOperation("upsert_movie", time.Since(start), err)
		return movie, err
	})
	if err != nil {
		return nil, storageError(record, err)
	}
	if movie == nil {
		return nil, storageError(record, errors.New("store returned no movie"))
	}
	return movie, nil
}
