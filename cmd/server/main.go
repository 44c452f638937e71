package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	activityhandler "mergington/internal/activity/handler"
	activitymetrics "mergington/internal/activity/metrics"
	"mergington/internal/activity/service"
	"mergington/internal/activity/store"
	memorystore "mergington/internal/activity/store/memory"
	postgresstore "mergington/internal/activity/store/postgres"
	redisstore "mergington/internal/activity/store/redis"
	"mergington/internal/audit"
	"mergington/internal/platform/config"
	"mergington/internal/platform/httpserver"
	"mergington/internal/platform/logger"
	"mergington/internal/platform/metrics"
	"mergington/internal/platform/postgres"
	"mergington/internal/platform/redis"
	httptransport "mergington/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	defer cleanup()

	if err := store.EnsureSeed(ctx, st); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}

	publisher, auditClose, err := buildAuditPublisher(cfg, log)
	if err != nil {
		return fmt.Errorf("build audit publisher: %w", err)
	}
	defer auditClose()

	inbox := make(audit.Inbox, 128)
	worker := audit.NewWorker(publisher, inbox, log)

	svc := service.New(st, log,
		service.WithMetrics(activitymetrics.New()),
		service.WithAuditor(inbox),
	)
	h := activityhandler.New(svc, log)
	router := httptransport.NewRouter(h, log, metrics.New(), cfg.StaticDir)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting activities server", "addr", cfg.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStore selects the registry backend from config. The returned cleanup
// closes whatever connection the backend holds.
func buildStore(ctx context.Context, cfg config.Server) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case "", "memory":
		return memorystore.New(), noop, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if db == nil {
			return nil, noop, fmt.Errorf("store is postgres but POSTGRES_DSN is empty")
		}
		st := postgresstore.New(db)
		if err := st.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return st, func() { _ = db.Close() }, nil

	case "redis":
		client, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		if client == nil {
			return nil, noop, fmt.Errorf("store is redis but REDIS_URL is empty")
		}
		return redisstore.New(client.Client), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// buildAuditPublisher assembles the audit publisher. Events always land in
// the in-memory store; a Kafka sink is attached when brokers are configured.
func buildAuditPublisher(cfg config.Server, log *slog.Logger) (*audit.Publisher, func(), error) {
	noop := func() {}

	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewPublisher(audit.NewInMemoryStore()), noop, nil
	}

	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, noop, err
	}
	log.Info("audit events will be published to kafka",
		"brokers", cfg.KafkaBrokers, "topic", cfg.AuditTopic)
	return audit.NewPublisher(audit.NewInMemoryStore(), audit.WithSink(sink)), sink.Close, nil
}
