package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"cleanroom/internal/identity"
	"cleanroom/internal/pipeline"
	pipelinehandler "cleanroom/internal/pipeline/handler"
	"cleanroom/internal/platform/config"
	"cleanroom/internal/platform/httpserver"
	"cleanroom/internal/platform/logger"
	platformredis "cleanroom/internal/platform/redis"
	"cleanroom/internal/resolution"
	resolutionmetrics "cleanroom/internal/resolution/metrics"
	"cleanroom/internal/resolution/ports"
	"cleanroom/internal/results"
	"cleanroom/internal/review"
	reviewhandler "cleanroom/internal/review/handler"
	httpapi "cleanroom/internal/transport/http"
	"cleanroom/pkg/platform/audit"
	auditkafka "cleanroom/pkg/platform/audit/kafka"
	"cleanroom/pkg/platform/audit/publisher"
	auditmemory "cleanroom/pkg/platform/audit/store/memory"
	auditpostgres "cleanroom/pkg/platform/audit/store/postgres"
	auditworker "cleanroom/pkg/platform/audit/worker"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)
	slog.SetDefault(log)

	ctx := context.Background()

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	auditSink := buildAuditSink(ctx, cfg, db, log)

	auditQueue := auditworker.NewQueue(1024)
	auditor := publisher.New(auditQueue)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go func() {
		if err := auditworker.New(auditSink, auditQueue.Events(), log).Run(workerCtx); err != nil && err != context.Canceled {
			log.Warn("audit worker stopped", "error", err)
		}
	}()

	var store results.Store
	var history results.HistoryStore
	if db != nil {
		store = results.NewPostgresStore(db)
		history = results.NewPostgresHistory(db)
	} else {
		store = results.NewInMemoryStore()
		history = results.NewInMemoryHistory()
	}

	checker := buildIdentityChecker(cfg, log)

	pipeCfg := pipeline.DefaultConfig()
	engine := resolution.NewEngine(pipeCfg.Resolution, checker, auditor, log, resolutionmetrics.New())
	runner := pipeline.NewRunner(pipeCfg, engine, store, history, auditor, log)

	reviewSvc := review.NewService(store, auditor, log)

	router := httpapi.NewRouter(
		pipelinehandler.New(runner, store, log),
		reviewhandler.New(reviewSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting cleanroom", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildAuditSink prefers Kafka, then the Postgres outbox, then memory.
func buildAuditSink(ctx context.Context, cfg config.Server, db *sql.DB, log *slog.Logger) audit.Sink {
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Warn("kafka audit sink unavailable, falling back", "error", err)
		} else {
			return sink
		}
	}
	if db != nil {
		return auditpostgres.New(db)
	}
	return auditmemory.NewInMemoryStore()
}

// buildIdentityChecker returns nil when no capability URL is configured;
// the engine treats that as "no identity checks".
func buildIdentityChecker(cfg config.Server, log *slog.Logger) ports.IdentityChecker {
	if cfg.IdentityCheckURL == "" {
		return nil
	}
	var checker ports.IdentityChecker = identity.NewClient(cfg.IdentityCheckURL, cfg.IdentityCheckTimeout)

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, identity cache disabled", "error", err)
		} else if client != nil {
			checker = identity.NewCachedChecker(checker, client.Client, time.Hour)
		}
	}
	return identity.NewFailClosed(checker, log)
}
