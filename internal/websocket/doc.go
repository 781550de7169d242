// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package websocket streams bulk-ingestion progress to connected admin clients.

It uses gorilla/websocket with a hub-client architecture. The Hub owns the
client set and is driven by RunWithContext under the supervisor; each Client
runs a read pump (disconnect detection, ping replies) and a write pump
(messages and keepalive pings).

The Hub implements ingest.EventPublisher, so the ingestion queue publishes
directly into it:

	hub := websocket.NewHub()
	queue.SetPublisher(hub)

Messages are JSON objects with a type and data:

	{"type":"queue_item","data":{"seq":7,"title":"Heat","ok":false,"field":"rating","reason":"rating must be less than or equal to 10","kind":"validation"}}
	{"type":"queue_status","data":{"queueLength":0,"processing":false,"stats":{"processed":41,"failed":1}}}

Publishing never blocks the drain loop: a full broadcast buffer drops the
message, and a client that cannot keep up is disconnected.
*/
package websocket
