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

	"ranking_backend/internal/app/di"
	"ranking_backend/internal/app/router"
	"ranking_backend/internal/platform/config"
	platformdb "ranking_backend/internal/platform/db"
	"ranking_backend/internal/platform/logger"
	"ranking_backend/internal/platform/metrics"
	platformredis "ranking_backend/internal/platform/redis"
)

const readHeaderTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(cfg.Database())
	if err != nil {
		return err
	}
	defer func() {
		if err := platformdb.Close(db); err != nil {
			slog.Error("failed to close DB", "error", err)
		}
	}()
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable. Using in-process rate limiter.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	m := metrics.New()
	r := router.NewRouter(router.Deps{
		Ranking:        di.NewRankingHandler(db, m),
		Metrics:        m,
		DeleteLimiter:  di.NewDeleteLimiter(rdb, cfg.DeleteRateLimit, cfg.DeleteRateWindow),
		DB:             sqlDB,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr)
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

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
