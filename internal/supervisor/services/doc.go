// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package services adapts CineVault components to suture's Serve pattern.

Each wrapper implements suture.Service and fmt.Stringer:

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - WebSocketHubService: the queue event hub
  - IngestQueueService: closes the ingest queue and drains it on cancel
  - CacheJanitorService: periodic sweep of expired movie cache entries

Usage:

	tree.AddDataService(services.NewIngestQueueService(queue, cfg.Ingest.ShutdownTimeout))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

Services return ctx.Err() when stopped by cancellation. Any other error is
treated by the supervisor as a failure and the service is restarted with
backoff.
*/
package services
