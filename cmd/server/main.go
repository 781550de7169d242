// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinevault/internal/api"
	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/authz"
	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/ingest"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/metrics"
	"github.com/tomtom215/cinevault/internal/supervisor"
	"github.com/tomtom215/cinevault/internal/supervisor/services"
	ws "github.com/tomtom215/cinevault/internal/websocket"
)

// version is set at build time: -ldflags "-X main.version=1.0.0".
var version = "dev"

//nolint:gocyclo // sequential setup
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("db_in_memory", cfg.Database.InMemory).
		Int("max_batch_size", cfg.Ingest.MaxBatchSize).
		Msg("Starting CineVault")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	hasher := auth.NewPasswordHasher(auth.BcryptCost)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = ensureAdmin(bootCtx, db, hasher, &cfg.Security)
	if err == nil {
		logCatalogSize(bootCtx, db)
	}
	bootCancel()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to bootstrap admin account")
		return
	}

	processor := ingest.NewProcessor(db, processorConfig(&cfg.Ingest))
	queue := ingest.NewQueue(processor, ingest.Options{RecentFailures: cfg.Ingest.RecentFailures})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create JWT manager")
		return
	}

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		CacheEnabled: cfg.Security.Casbin.CacheEnabled,
		CacheTTL:     cfg.Security.Casbin.CacheTTL,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create authorization enforcer")
		return
	}

	wsHub := ws.NewHub()
	queue.SetPublisher(wsHub)

	handler := api.NewHandler(cfg, api.Deps{
		DB:         db,
		Queue:      queue,
		Processor:  processor,
		JWTManager: jwtManager,
		WSHub:      wsHub,
		Hasher:     hasher,
	})
	router := api.NewRouter(handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromConfig(cfg)),
		auth.NewMiddleware(jwtManager),
		authz.NewMiddleware(enforcer),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  treeShutdownTimeout(cfg),
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	tree.AddDataService(services.NewIngestQueueService(queue, cfg.Ingest.ShutdownTimeout))
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewCacheJanitorService(handler, cfg.Cache.MovieTTL))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	status := queue.Status()
	logging.Info().
		Int("pending", status.QueueLength).
		Int("processed", status.Stats.Processed).
		Int("failed", status.Stats.Failed).
		Msg("CineVault stopped")
}

// logCatalogSize reports what the store holds at startup. Count failures are
// logged and otherwise ignored.
func logCatalogSize(ctx context.Context, db *database.DB) {
	movies, err := db.CountMovies(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to count movies")
		return
	}
	users, err := db.CountUsers(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to count users")
		return
	}
	logging.Info().Int("movies", movies).Int("users", users).Msg("Catalog opened")
}

func processorConfig(c *config.IngestConfig) ingest.ProcessorConfig {
	pc := ingest.DefaultProcessorConfig()
	if c.MaxDuration > 0 {
		pc.MaxDuration = c.MaxDuration
	}
	pc.WritesPerSecond = c.WritesPerSecond
	if c.WriteBurst > 0 {
		pc.WriteBurst = c.WriteBurst
	}
	if c.BreakerFailures > 0 {
		pc.BreakerFailures = c.BreakerFailures
	}
	if c.BreakerTimeout > 0 {
		pc.BreakerTimeout = c.BreakerTimeout
	}
	return pc
}

// treeShutdownTimeout gives each service enough time for the slower of the
// HTTP shutdown and the ingest drain, plus a margin for logging.
func treeShutdownTimeout(cfg *config.Config) time.Duration {
	timeout := cfg.Server.ShutdownTimeout
	if cfg.Ingest.ShutdownTimeout > timeout {
		timeout = cfg.Ingest.ShutdownTimeout
	}
	return timeout + 5*time.Second
}
