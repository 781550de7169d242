// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinevault/internal/ingest"
)

type queueStatusData struct {
	Queue          ingest.Snapshot  `json:"queue"`
	RecentFailures []ingest.Failure `json:"recentFailures"`
}

func TestBulkUpload_InvalidBatch(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing movies", `{}`, CodeInvalidBatch},
		{"movies is null", `{"movies":null}`, CodeInvalidBatch},
		{"movies is an object", `{"movies":{"title":"Heat"}}`, CodeInvalidBatch},
		{"movies is a string", `{"movies":"[]"}`, CodeInvalidBatch},
		{"empty array", `{"movies":[]}`, CodeInvalidBatch},
		{"over the batch limit", `{"movies":[{},{},{},{},{},{}]}`, CodeInvalidBatch},
		{"malformed json", `{"movies":[`, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/movies/bulk", env.adminToken, tt.body)
			expectError(t, w, http.StatusBadRequest, tt.code)
		})
	}

	if got := env.queue.Status(); got.QueueLength != 0 || got.Stats.Processed+got.Stats.Failed != 0 {
		t.Errorf("rejected batches reached the queue: %+v", got)
	}
}

func TestBulkUpload_Accepted(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"movies": []interface{}{
			movieBody("Arrival", 7.9),
			movieBody("Broken", 15),
			movieBody("Contact", "7.5"),
		},
	}
	w := env.do(t, http.MethodPost, "/api/movies/bulk", env.adminToken, body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (body %s)", w.Code, w.Body.String())
	}
	var receipt ingest.Receipt
	resp := decodeData(t, w, &receipt)
	if receipt.Accepted != 3 {
		t.Errorf("accepted = %d, want 3", receipt.Accepted)
	}
	if resp.Message == "" {
		t.Error("missing message")
	}

	env.waitIdle(t)

	w = env.do(t, http.MethodGet, "/api/movies/queue/status", env.adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d", w.Code)
	}
	var status queueStatusData
	decodeData(t, w, &status)

	if status.Queue.Processing || status.Queue.QueueLength != 0 {
		t.Errorf("queue = %+v, want idle and empty", status.Queue)
	}
	if status.Queue.Stats.Processed != 2 || status.Queue.Stats.Failed != 1 {
		t.Errorf("stats = %+v, want 2 processed / 1 failed", status.Queue.Stats)
	}
	if len(status.RecentFailures) != 1 || status.RecentFailures[0].Title != "Broken" || status.RecentFailures[0].Field != "rating" {
		t.Errorf("recentFailures = %+v", status.RecentFailures)
	}

	count, err := env.db.CountMovies(context.Background())
	if err != nil || count != 2 {
		t.Errorf("CountMovies() = %d, %v, want 2", count, err)
	}
}

func TestBulkUpload_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{"movies": []interface{}{movieBody("Once", 6)}}

	for i := 0; i < 2; i++ {
		if w := env.do(t, http.MethodPost, "/api/movies/bulk", env.adminToken, body); w.Code != http.StatusAccepted {
			t.Fatalf("upload #%d status = %d", i, w.Code)
		}
		env.waitIdle(t)
	}

	count, err := env.db.CountMovies(context.Background())
	if err != nil || count != 1 {
		t.Errorf("CountMovies() = %d, %v, want 1", count, err)
	}
}

func TestBulkUpload_ClosedQueue(t *testing.T) {
	env := newTestEnv(t)
	env.queue.Close()

	w := env.do(t, http.MethodPost, "/api/movies/bulk", env.adminToken, map[string]interface{}{
		"movies": []interface{}{movieBody("Late", 5)},
	})
	expectError(t, w, http.StatusServiceUnavailable, CodeUnavailable)
}

func TestQueueEndpoints_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/movies/bulk", `{"movies":[{}]}`},
		{http.MethodGet, "/api/movies/queue/status", nil},
		{http.MethodGet, "/api/movies/queue/ws", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			expectError(t, env.do(t, tt.method, tt.path, env.userToken, tt.body), http.StatusForbidden, CodeForbidden)
			expectError(t, env.do(t, tt.method, tt.path, "", tt.body), http.StatusUnauthorized, CodeUnauthorized)
		})
	}
}

func TestQueueWebSocket(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	t.Cleanup(server.Close)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+env.adminToken)
	header.Set("Origin", testOrigin)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/movies/queue/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	readType := func(want string) json.RawMessage {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("ReadMessage() waiting for %s: %v", want, err)
			}
			var msg struct {
				Type string          `json:"type"`
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("decode message: %v", err)
			}
			if msg.Type == want {
				return msg.Data
			}
		}
	}

	readType("queue_status")

	w := env.do(t, http.MethodPost, "/api/movies/bulk", env.adminToken, map[string]interface{}{
		"movies": []interface{}{movieBody("Streamed", 8)},
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("bulk status = %d", w.Code)
	}

	var item ingest.ItemResult
	if err := json.Unmarshal(readType("queue_item"), &item); err != nil {
		t.Fatalf("decode queue_item: %v", err)
	}
	if !item.OK || item.Title != "Streamed" {
		t.Errorf("queue_item = %+v", item)
	}
}

func TestQueueWebSocket_RejectsForeignOrigin(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	t.Cleanup(server.Close)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+env.adminToken)
	header.Set("Origin", "http://evil.example")

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/movies/queue/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err == nil {
		_ = conn.Close()
		t.Fatal("Dial() succeeded from a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %+v, want 403", resp)
	}
}
