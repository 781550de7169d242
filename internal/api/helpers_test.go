// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/authz"
	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/models"
	ws "github.com/tomtom215/cinevault/internal/websocket"
)

const testOrigin = "http://localhost:3000"

// testEnv is a fully wired API backed by in-memory Badger.
type testEnv struct {
	handler    *Handler
	router     http.Handler
	db         *database.DB
	queue      *ingest.Queue
	jwt        *auth.JWTManager
	adminToken string
	userToken  string
	user       *models.User
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		API:    config.APIConfig{DefaultPageSize: 12, MaxPageSize: 100},
		Security: config.SecurityConfig{
			JWTSecret:         strings.Repeat("k", 32),
			SessionTimeout:    time.Hour,
			CORSOrigins:       []string{testOrigin},
			RateLimitDisabled: true,
		},
		Ingest: config.IngestConfig{MaxBatchSize: 5, RecentFailures: 10},
		Cache:  config.CacheConfig{MovieCapacity: 100, MovieTTL: time.Minute},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithConfig(t, testConfig())
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{InMemory: true})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	hub := ws.NewHub()
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(hubCtx)
		close(hubDone)
	}()
	t.Cleanup(func() {
		stopHub()
		<-hubDone
	})

	processor := ingest.NewProcessor(db, ingest.DefaultProcessorConfig())
	queue := ingest.NewQueue(processor, ingest.Options{RecentFailures: cfg.Ingest.RecentFailures})
	queue.SetPublisher(hub)
	t.Cleanup(func() {
		queue.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.Wait(ctx)
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	handler := NewHandler(cfg, Deps{
		DB:         db,
		Queue:      queue,
		Processor:  processor,
		JWTManager: jwtManager,
		WSHub:      hub,
		Hasher:     auth.NewPasswordHasher(4),
	})
	router := NewRouter(handler,
		NewChiMiddleware(ChiMiddlewareConfigFromConfig(cfg)),
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer),
	)

	env := &testEnv{
		handler: handler,
		router:  router.Setup(),
		db:      db,
		queue:   queue,
		jwt:     jwtManager,
	}
	env.adminToken, _ = env.createUser(t, "admin", models.RoleAdmin)
	env.userToken, env.user = env.createUser(t, "viewer", models.RoleUser)
	return env
}

// createUser stores a user with password "password1" and returns a token.
func (e *testEnv) createUser(t *testing.T, username, role string) (string, *models.User) {
	t.Helper()

	hash, err := e.handler.hasher.Hash("password1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	user, err := e.db.CreateUser(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	token, err := e.jwt.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token, user
}

// do sends a request through the full router.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createMovie stores a movie directly.
func (e *testEnv) createMovie(t *testing.T, title, date string) *models.Movie {
	t.Helper()
	movie, err := e.db.CreateMovie(context.Background(), &models.MovieInput{
		Title:       title,
		Description: "About " + title,
		ReleaseDate: date,
		Duration:    100,
		Rating:      7,
	})
	if err != nil {
		t.Fatalf("CreateMovie(%s) error = %v", title, err)
	}
	return movie
}

func (e *testEnv) waitIdle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.queue.Wait(ctx); err != nil {
		t.Fatalf("queue.Wait() error = %v", err)
	}
}

// envelope is the decoded response body.
type envelope struct {
	Status     string           `json:"status"`
	Message    string           `json:"message"`
	Data       json.RawMessage  `json:"data"`
	Error      *models.APIError `json:"error"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

// decodeData unmarshals the data block into dst.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return env
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Status != models.StatusError {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
	return env
}

func movieBody(title string, rating interface{}) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "About " + title,
		"releaseDate": "2021-05-01",
		"duration":    110,
		"rating":      rating,
	}
}

func decodeJSONBody(t *testing.T, data []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}
