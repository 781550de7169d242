// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

/*
Package supervisor builds the suture v4 process tree for the CineVault server.

	cinevault (root)
	├── data-layer
	│   └── ingest-queue
	├── messaging-layer
	│   ├── websocket-hub
	│   └── cache-janitor
	└── api-layer
	    └── http-server

A crashing service is restarted by its layer supervisor. Failures decay over
FailureDecay seconds; crossing FailureThreshold puts the layer into a
FailureBackoff pause. Supervisor events are logged through sutureslog.

On shutdown every service gets ShutdownTimeout to return. The ingest queue
drain is bounded separately, so ShutdownTimeout must be at least as long as
the drain timeout or the drain is reported as an unstopped service.
*/
package supervisor
