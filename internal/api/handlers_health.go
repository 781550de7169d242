// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinevault/internal/metrics"
	"github.com/tomtom215/cinevault/internal/models"
)

// healthData is the data block of the health response.
type healthData struct {
	Database string  `json:"database"`
	Uptime   float64 `json:"uptime"`
	Queue    struct {
		QueueLength int    `json:"queueLength"`
		Processing  bool   `json:"processing"`
		Breaker     string `json:"storageBreaker,omitempty"`
	} `json:"queue"`
}

// Health reports whether the service can reach its store. It answers 200
// when the store pings and 503 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.startTime)
	metrics.SetUptime(uptime)

	data := healthData{
		Database: "connected",
		Uptime:   uptime.Seconds(),
	}
	if h.queue != nil {
		snapshot := h.queue.Status()
		data.Queue.QueueLength = snapshot.QueueLength
		data.Queue.Processing = snapshot.Processing
	}
	if h.processor != nil {
		data.Queue.Breaker = h.processor.BreakerState()
	}

	status, message, code := models.StatusSuccess, "Server is running", http.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		data.Database = "disconnected"
		status, message, code = models.StatusError, "Database connection failed", http.StatusServiceUnavailable
	}

	writeJSON(w, code, &models.HealthResponse{
		Status:      status,
		Message:     message,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.config.Server.Environment,
		Data:        data,
	})
}
