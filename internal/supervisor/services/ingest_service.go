// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package services

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinevault/internal/logging"
)

// IngestQueue is the lifecycle subset of *ingest.Queue.
type IngestQueue interface {
	Close()
	Wait(ctx context.Context) error
}

// IngestQueueService owns the shutdown of the bulk ingestion queue. The
// queue starts its own drain loop on demand, so Serve only waits for
// cancellation; it then closes the queue to new batches and waits for the
// items already accepted, bounded by drainTimeout.
//
// Items still pending after the timeout are lost. The queue is in-memory
// only.
type IngestQueueService struct {
	queue        IngestQueue
	drainTimeout time.Duration
}

// NewIngestQueueService wraps queue. A non-positive timeout means 30s.
func NewIngestQueueService(queue IngestQueue, drainTimeout time.Duration) *IngestQueueService {
	if drainTimeout <= 0 {
		drainTimeout = 30 * time.Second
	}
	return &IngestQueueService{queue: queue, drainTimeout: drainTimeout}
}

// Serve implements suture.Service.
func (s *IngestQueueService) Serve(ctx context.Context) error {
	<-ctx.Done()

	s.queue.Close()

	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()

	start := time.Now()
	if err := s.queue.Wait(drainCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logging.Warn().
				Dur("timeout", s.drainTimeout).
				Msg("Ingest queue did not drain before shutdown; pending items dropped")
		}
	} else {
		logging.Info().Dur("elapsed", time.Since(start)).Msg("Ingest queue drained")
	}
	return ctx.Err()
}

func (s *IngestQueueService) String() string {
	return "ingest-queue"
}
