// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package websocket

import "github.com/tomtom215/cinevault/internal/ingest"

// Hub forwards ingestion progress to connected clients.
var _ ingest.EventPublisher = (*Hub)(nil)

// PublishItemResult broadcasts a queue_item message for one processed record.
func (h *Hub) PublishItemResult(result ingest.ItemResult) {
	h.BroadcastJSON(MessageTypeQueueItem, result)
}

// PublishStatus broadcasts a queue_status message with the queue snapshot.
func (h *Hub) PublishStatus(snapshot ingest.Snapshot) {
	h.BroadcastJSON(MessageTypeQueueStatus, snapshot)
}
