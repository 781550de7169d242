// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockIngestQueue drains after drainDelay once closed.
type mockIngestQueue struct {
	drainDelay time.Duration
	closed     atomic.Bool
	waits      atomic.Int32
}

func (m *mockIngestQueue) Close() { m.closed.Store(true) }

func (m *mockIngestQueue) Wait(ctx context.Context) error {
	m.waits.Add(1)
	select {
	case <-time.After(m.drainDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ suture.Service = (*IngestQueueService)(nil)

func TestIngestQueueService_Serve(t *testing.T) {
	tests := []struct {
		name         string
		drainDelay   time.Duration
		drainTimeout time.Duration
		maxElapsed   time.Duration
	}{
		{"drains before timeout", 10 * time.Millisecond, time.Second, 500 * time.Millisecond},
		{"gives up at timeout", time.Hour, 50 * time.Millisecond, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &mockIngestQueue{drainDelay: tt.drainDelay}
			svc := NewIngestQueueService(queue, tt.drainTimeout)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- svc.Serve(ctx) }()

			time.Sleep(10 * time.Millisecond)
			if queue.closed.Load() {
				t.Fatal("queue closed before cancellation")
			}

			start := time.Now()
			cancel()
			select {
			case err := <-done:
				if !errors.Is(err, context.Canceled) {
					t.Errorf("Serve() = %v, want context.Canceled", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve did not return")
			}
			if elapsed := time.Since(start); elapsed > tt.maxElapsed {
				t.Errorf("shutdown took %v", elapsed)
			}
			if !queue.closed.Load() || queue.waits.Load() != 1 {
				t.Errorf("closed = %v, waits = %d", queue.closed.Load(), queue.waits.Load())
			}
		})
	}
}

func TestNewIngestQueueService_Defaults(t *testing.T) {
	svc := NewIngestQueueService(&mockIngestQueue{}, 0)
	if svc.drainTimeout != 30*time.Second {
		t.Errorf("drainTimeout = %v, want 30s", svc.drainTimeout)
	}
	if svc.String() != "ingest-queue" {
		t.Errorf("String() = %q", svc.String())
	}
}
