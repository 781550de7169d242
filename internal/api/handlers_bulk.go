// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/logging"
	ws "github.com/tomtom215/cinevault/internal/websocket"
)

// BulkUpload accepts a batch of movie records for background ingestion and
// answers 202 before any record is processed. Only the batch shape is
// checked here; per-record failures show up in the queue status.
func (h *Handler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}

	records, ok := req.records()
	if !ok || len(records) == 0 {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBatch, "Movies array is required and must not be empty", nil)
		return
	}
	if limit := h.config.Ingest.MaxBatchSize; limit > 0 && len(records) > limit {
		respondError(w, r, http.StatusBadRequest, CodeInvalidBatch,
			fmt.Sprintf("Batch of %d movies exceeds the limit of %d", len(records), limit), nil)
		return
	}

	receipt, err := h.queue.Enqueue(records)
	switch {
	case errors.Is(err, ingest.ErrInvalidBatch):
		respondError(w, r, http.StatusBadRequest, CodeInvalidBatch, "Movies array is required and must not be empty", nil)
		return
	case errors.Is(err, ingest.ErrQueueClosed):
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable, "Ingestion is shutting down", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to queue movies", err)
		return
	}

	logger := logging.Ctx(r.Context())
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		logger.Info().Str("user_id", claims.UserID).Int("accepted", receipt.Accepted).Msg("Bulk upload queued")
	}

	respondJSON(w, http.StatusAccepted,
		fmt.Sprintf("%d movies queued for processing", receipt.Accepted), receipt)
}

// QueueStatus returns the ingestion queue snapshot and the most recent
// per-record failures.
func (h *Handler) QueueStatus(w http.ResponseWriter, r *http.Request) {
	failures := h.queue.RecentFailures()
	if failures == nil {
		failures = []ingest.Failure{}
	}
	respondJSON(w, http.StatusOK, "", map[string]interface{}{
		"queue":          h.queue.Status(),
		"recentFailures": failures,
	})
}

// QueueWebSocket upgrades the connection and streams queue_item and
// queue_status messages from the hub.
func (h *Handler) QueueWebSocket(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn, claims.UserID)
	h.wsHub.Register <- client
	client.Start()

	// Send the current state so a new client does not wait for the next change.
	h.wsHub.PublishStatus(h.queue.Status())
}
