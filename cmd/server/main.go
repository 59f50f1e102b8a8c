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

	redisv9 "github.com/redis/go-redis/v9"

	"messagely/internal/app/di"
	"messagely/internal/config"
	authusecase "messagely/internal/feature/auth/usecase"
	messageusecase "messagely/internal/feature/messages/usecase"
	platformdb "messagely/internal/platform/db"
	"messagely/internal/platform/logger"
	"messagely/internal/platform/rabbitmq"
	platformredis "messagely/internal/platform/redis"
	"messagely/internal/shared/ratelimiter"
)

// cleanupInterval is how often expired deny-list entries and idle rate limit windows are dropped.
const cleanupInterval = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewSlog(logger.SlogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)
	log.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(cfg.DB)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr == "" {
		log.Info("Redis not configured. Running without cache.")
	} else if tmp, err := platformredis.NewRedisClient(ctx, addr, cfg.Redis.Password); err != nil {
		log.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// RabbitMQ
	var events messageusecase.EventPublisher
	if cfg.RabbitMQ.URL == "" {
		log.Info("RabbitMQ not configured. Message events are disabled.")
	} else if client, err := rabbitmq.NewClient(cfg.RabbitMQ); err != nil {
		log.Warn("RabbitMQ unavailable. Message events are disabled.", "error", err)
	} else {
		events = client
		defer client.Close()
	}

	app, err := di.BuildApp(cfg, di.Infra{DB: db, Redis: rdb, Events: events, Logger: log})
	if err != nil {
		return err
	}

	go cleanupLoop(ctx, app.Revocations, app.AuthLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanupLoop drops expired revocations and idle rate limit windows until ctx is done.
func cleanupLoop(ctx context.Context, revocations authusecase.RevocationStore, limiter *ratelimiter.RateLimiter) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := revocations.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("failed to delete expired revocations", "error", err)
			} else if n > 0 {
				slog.Info("expired revocations deleted", "count", n)
			}
			limiter.Prune()
		}
	}
}
