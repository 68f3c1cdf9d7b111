package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/content-gallery/config"
	"github.com/d60-Lab/content-gallery/internal/api/handler"
	"github.com/d60-Lab/content-gallery/internal/api/router"
	"github.com/d60-Lab/content-gallery/internal/repository"
	"github.com/d60-Lab/content-gallery/internal/service"
	"github.com/d60-Lab/content-gallery/internal/storage"
	"github.com/d60-Lab/content-gallery/pkg/database"
	"github.com/d60-Lab/content-gallery/pkg/logger"
	"github.com/d60-Lab/content-gallery/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	if cfg.Tracing.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, "content-gallery", cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(ctx) }()
		}
	}

	db := must(database.InitDB(cfg))

	var stats *service.StatsReplicator
	var stopStats func(context.Context) error
	if cfg.Redis.Enabled {
		cache := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, stats counters disabled", zap.Error(err))
		} else {
			stats = service.NewStatsReplicator(cache, 0)
			stopStats = stats.Start(2)
		}
	}

	contentRepo := repository.NewContentRepository(db)
	authSvc := service.NewAuthService(cfg.Auth)
	contentSvc := service.NewContentService(contentRepo, stats)
	store := must(storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.BaseURL))

	h := handler.New(authSvc, contentSvc, store)
	engine := router.New(cfg, h, authSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	if stopStats != nil {
		_ = stopStats(shutdownCtx)
	}
}
