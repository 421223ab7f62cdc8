// chatpush delivers push notifications for newly created chat messages and
// fronts the payment processor for the chat client.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	natspkg "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	auditpg "github.com/strogmv/chatpush/internal/adapter/audit/postgres"
	s3store "github.com/strogmv/chatpush/internal/adapter/audit/s3"
	directorypg "github.com/strogmv/chatpush/internal/adapter/directory/postgres"
	natsevents "github.com/strogmv/chatpush/internal/adapter/events/nats"
	"github.com/strogmv/chatpush/internal/app"
	"github.com/strogmv/chatpush/internal/config"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/pkg/tracing"
	"github.com/strogmv/chatpush/internal/service"
	transport "github.com/strogmv/chatpush/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	log := logger.Init(slog.LevelDebug)

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdown, err := tracing.Init(ctx, "chatpush", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("init tracing", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	// --- Postgres ---
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = pool.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Error("ping database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := directorypg.InitSchema(ctx, pool); err != nil {
		log.Error("init directory schema", slog.Any("error", err))
		os.Exit(1)
	}
	if err := auditpg.InitSchema(ctx, pool); err != nil {
		log.Error("init audit schema", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Redis (optional) ---
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	// --- Container ---
	container, err := app.NewContainer(ctx, cfg, pool, rdb)
	if err != nil {
		log.Error("build container", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Event trigger ---
	nc, err := natspkg.Connect(cfg.NATSURL)
	if err != nil {
		log.Error("connect nats", slog.Any("error", err))
		os.Exit(1)
	}
	defer nc.Close()

	subscriber := natsevents.NewSubscriber(nc, container.SvcFanout)
	sub, err := subscriber.Start(cfg.MessageSubject)
	if err != nil {
		log.Error("subscribe to message events", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = sub.Drain() }()
	log.Info("listening for message events", slog.String("subject", cfg.MessageSubject))

	// --- Audit archive exporter (optional) ---
	if cfg.AuditArchiveBucket != "" {
		objectStore, err := s3store.New(ctx, cfg.AuditArchiveRegion, cfg.AuditArchiveBucket, cfg.AuditArchiveEndpoint)
		if err != nil {
			log.Error("init audit archive store", slog.Any("error", err))
			os.Exit(1)
		}
		archiver := service.NewArchiver(container.AuditSource, objectStore, cfg.AuditRetention, cfg.AuditArchiveInterval)
		go archiver.Run(ctx)
	}

	// --- HTTP ---
	router := transport.NewRouter(container.SvcPayments, []byte(cfg.JWTSecret))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(router, "chatpush"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server listening", slog.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", slog.Any("error", err))
	}
}
