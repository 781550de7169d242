// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/metrics"
	"github.com/tomtom215/cinevault/internal/models"
)

// Item is one queued record. It is processed exactly once and then dropped.
type Item struct {
	Seq        uint64
	Payload    json.RawMessage
	ReceivedAt time.Time
}

// ItemProcessor handles one item. *Processor is the production implementation.
type ItemProcessor interface {
	Process(ctx context.Context, item Item) (*models.Movie, error)
}

// ItemProcessorFunc adapts a function to ItemProcessor.
type ItemProcessorFunc func(ctx context.Context, item Item) (*models.Movie, error)

// Process calls f(ctx, item).
func (f ItemProcessorFunc) Process(ctx context.Context, item Item) (*models.Movie, error) {
	return f(ctx, item)
}

// Receipt is the synchronous answer to Enqueue.
type Receipt struct {
	Accepted    int `json:"accepted"`
	QueueLength int `json:"queueLength"`
}

// Stats are cumulative since the queue was created. Every completed item
// increments exactly one counter.
type Stats struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Snapshot is the status view of the queue.
type Snapshot struct {
	QueueLength int   `json:"queueLength"`
	Processing  bool  `json:"processing"`
	Stats       Stats `json:"stats"`
}

// Failure is a retained record of a failed item.
type Failure struct {
	Title  string    `json:"title"`
	Field  string    `json:"field,omitempty"`
	Reason string    `json:"reason"`
	Kind   ErrorKind `json:"kind"`
	At     time.Time `json:"at"`
}

// ItemResult is published for every completed item.
type ItemResult struct {
	Seq     uint64    `json:"seq"`
	Title   string    `json:"title"`
	OK      bool      `json:"ok"`
	MovieID string    `json:"movieId,omitempty"`
	Field   string    `json:"field,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
}

// EventPublisher observes queue progress. Implementations must not block.
type EventPublisher interface {
	PublishItemResult(result ItemResult)
	PublishStatus(snapshot Snapshot)
}

// Options configures a Queue.
type Options struct {
	// RecentFailures bounds the retained failure list; 0 disables it.
	RecentFailures int

	// Publisher receives item and status events; may be nil.
	Publisher EventPublisher
}

// Queue is an in-memory FIFO of records with a single background drain
// loop. State is not persisted and is lost on restart.
type Queue struct {
	processor ItemProcessor
	publisher EventPublisher
	logger    zerolog.Logger

	// ctx is detached from any request; items are never cancelled.
	ctx context.Context

	mu         sync.Mutex
	pending    []Item
	processing bool
	closed     bool
	stats      Stats
	nextSeq    uint64
	loopStarts int
	idle       chan struct{}

	failures     []Failure
	failuresNext int
	failuresFull bool
}

// NewQueue creates an idle queue.
func NewQueue(processor ItemProcessor, opts Options) *Queue {
	idle := make(chan struct{})
	close(idle)

	q := &Queue{
		processor: processor,
		publisher: opts.Publisher,
		logger:    logging.WithComponent("ingest"),
		ctx:       context.Background(),
		idle:      idle,
	}
	if opts.RecentFailures > 0 {
		q.failures = make([]Failure, opts.RecentFailures)
	}
	return q
}

// SetPublisher attaches an observer after construction.
func (q *Queue) SetPublisher(p EventPublisher) {
	q.mu.Lock()
	q.publisher = p
	q.mu.Unlock()
}

// Enqueue appends records in order and starts the drain loop if idle. It
// returns immediately; processing results surface only through Status.
func (q *Queue) Enqueue(records []json.RawMessage) (Receipt, error) {
	if len(records) == 0 {
		return Receipt{}, ErrInvalidBatch
	}

	now := time.Now()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return Receipt{}, ErrQueueClosed
	}
	for _, raw := range records {
		q.nextSeq++
		q.pending = append(q.pending, Item{Seq: q.nextSeq, Payload: raw, ReceivedAt: now})
	}
	receipt := Receipt{Accepted: len(records), QueueLength: len(q.pending)}

	start := !q.processing
	if start {
		q.processing = true
		q.loopStarts++
		q.idle = make(chan struct{})
	}
	snapshot := q.snapshotLocked()
	publisher := q.publisher
	q.mu.Unlock()

	metrics.RecordIngestBatch(len(records))
	metrics.SetIngestQueueState(snapshot.QueueLength, snapshot.Processing)

	q.logger.Info().
		Int("accepted", receipt.Accepted).
		Int("queue_length", receipt.QueueLength).
		Bool("drain_started", start).
		Msg("Batch enqueued")

	if start {
		metrics.IngestDrainLoops.Inc()
		go q.drain()
	}
	q.publish(publisher, func(p EventPublisher) { p.PublishStatus(snapshot) })

	return receipt, nil
}

// Status returns a consistent snapshot of the queue.
func (q *Queue) Status() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// RecentFailures returns retained failures, oldest first.
func (q *Queue) RecentFailures() []Failure {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.failures) == 0 {
		return []Failure{}
	}
	if !q.failuresFull {
		return append([]Failure(nil), q.failures[:q.failuresNext]...)
	}
	out := make([]Failure, 0, len(q.failures))
	out = append(out, q.failures[q.failuresNext:]...)
	return append(out, q.failures[:q.failuresNext]...)
}

// Wait blocks until the queue is idle or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting batches. Items already queued are still drained.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *Queue) snapshotLocked() Snapshot {
	return Snapshot{
		QueueLength: len(q.pending),
		Processing:  q.processing,
		Stats:       q.stats,
	}
}

// drain pops and processes items until the queue is empty. A panic that
// escapes item handling is logged; the loop either continues in a fresh
// goroutine or marks the queue idle, so processing is never left set
// without a running loop.
func (q *Queue) drain() {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		metrics.IngestPanicsRecovered.WithLabelValues("loop").Inc()
		q.logger.Error().Str("panic", fmt.Sprint(r)).Msg("Drain loop recovered from panic")

		if !q.finishIfEmpty() {
			go q.drain()
		}
	}()

	for {
		item, ok := q.next()
		if !ok {
			return
		}
		start := time.Now()
		movie, err := q.processItem(item)
		q.complete(item, movie, err, time.Since(start))
	}
}

// next pops the head of the queue. On an empty queue it clears processing
// under the same lock as the emptiness check and reports false. Only the
// drain loop pops, so pending cannot shrink between the two critical
// sections.
func (q *Queue) next() (Item, bool) {
	if q.finishIfEmpty() {
		return Item{}, false
	}

	q.mu.Lock()
	item := q.pending[0]
	q.pending[0] = Item{}
	q.pending = q.pending[1:]
	length := len(q.pending)
	q.mu.Unlock()

	metrics.SetIngestQueueState(length, true)
	return item, true
}

// finishIfEmpty marks the queue idle if nothing is pending.
func (q *Queue) finishIfEmpty() bool {
	q.mu.Lock()
	if len(q.pending) > 0 {
		q.mu.Unlock()
		return false
	}
	if !q.processing {
		q.mu.Unlock()
		return true
	}
	q.processing = false
	q.pending = nil
	close(q.idle)
	snapshot := q.snapshotLocked()
	publisher := q.publisher
	q.mu.Unlock()

	metrics.SetIngestQueueState(0, false)
	q.logger.Info().
		Int("processed", snapshot.Stats.Processed).
		Int("failed", snapshot.Stats.Failed).
		Msg("Ingestion queue drained")

	q.publish(publisher, func(p EventPublisher) { p.PublishStatus(snapshot) })
	return true
}

// processItem runs the processor with an item-level panic boundary.
func (q *Queue) processItem(item Item) (movie *models.Movie, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IngestPanicsRecovered.WithLabelValues("item").Inc()
			movie = nil
			err = &ItemError{
				Record: payloadTitle(item.Payload),
				Reason: fmt.Sprintf("panic: %v", r),
				Kind:   KindInternal,
			}
		}
	}()
	return q.processor.Process(q.ctx, item)
}

// complete records the outcome of one item: stats first, then logging and
// events.
func (q *Queue) complete(item Item, movie *models.Movie, err error, elapsed time.Duration) {
	if err == nil && movie == nil {
		err = &ItemError{Record: payloadTitle(item.Payload), Reason: "processor returned no movie", Kind: KindInternal}
	}
	result := ItemResult{Seq: item.Seq, OK: err == nil}

	if err == nil {
		result.Title = movie.Title
		result.MovieID = movie.ID
	} else {
		var itemErr *ItemError
		if !errors.As(err, &itemErr) {
			itemErr = &ItemError{Record: payloadTitle(item.Payload), Reason: err.Error(), Kind: KindInternal, Err: err}
		}
		result.Title = itemErr.Record
		result.Field = itemErr.Field
		result.Reason = itemErr.Reason
		result.Kind = itemErr.Kind
	}

	q.mu.Lock()
	if result.OK {
		q.stats.Processed++
	} else {
		q.stats.Failed++
		q.recordFailureLocked(Failure{
			Title:  result.Title,
			Field:  result.Field,
			Reason: result.Reason,
			Kind:   result.Kind,
			At:     time.Now().UTC(),
		})
	}
	publisher := q.publisher
	q.mu.Unlock()

	metrics.RecordIngestItem(result.OK, string(result.Kind), elapsed)

	if result.OK {
		q.logger.Debug().
			Uint64("seq", item.Seq).
			Str("title", result.Title).
			Str("movie_id", result.MovieID).
			Msg("Movie ingested")
	} else {
		q.logger.Warn().
			Uint64("seq", item.Seq).
			Str("title", result.Title).
			Str("field", result.Field).
			Str("reason", result.Reason).
			Str("kind", string(result.Kind)).
			Msg("Movie ingestion failed")
	}

	q.publish(publisher, func(p EventPublisher) { p.PublishItemResult(result) })
}

// publish delivers one event. A panicking subscriber is logged and ignored.
func (q *Queue) publish(p EventPublisher, deliver func(EventPublisher)) {
	if p == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			metrics.IngestPanicsRecovered.WithLabelValues("publisher").Inc()
			q.logger.Error().Str("panic", fmt.Sprint(r)).Msg("Event publisher panicked")
		}
	}()
	deliver(p)
}

func (q *Queue) recordFailureLocked(f Failure) {
	if len(q.failures) == 0 {
		return
	}
	q.failures[q.failuresNext] = f
	q.failuresNext++
	if q.failuresNext == len(q.failures) {
		q.failuresNext = 0
		q.failuresFull = true
	}
}
