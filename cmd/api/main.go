// Package main is the entry point for the arena-feed-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/internal/config"
	"arena-feed-service/internal/domain"
	"arena-feed-service/internal/infra/postgres"
	"arena-feed-service/internal/infra/postgres/migrations"
	"arena-feed-service/internal/infra/provider"
	"arena-feed-service/internal/infra/provider/highlights"
	rediscache "arena-feed-service/internal/infra/redis"
	"arena-feed-service/internal/job"
	"arena-feed-service/internal/logger"
	"arena-feed-service/internal/transport/httpserver"
	"arena-feed-service/internal/validator"
	"arena-feed-service/pkg/locker"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting arena-feed-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	repo := postgres.NewRepository(db)

	// External highlight providers
	highlightsClient := highlights.New(
		provider.ClientConfig{
			BaseURL: cfg.Provider.Highlights.BaseURL,
			Timeout: cfg.Provider.Highlights.Timeout,
			Retry: provider.RetryConfig{
				MaxAttempts: cfg.Provider.Highlights.Retry.MaxAttempts,
				WaitTime:    cfg.Provider.Highlights.Retry.WaitTime,
				MaxWaitTime: cfg.Provider.Highlights.Retry.MaxWaitTime,
			},
			CB: provider.CBConfig{
				MaxRequests:  cfg.Provider.Highlights.CB.MaxRequests,
				Interval:     cfg.Provider.Highlights.CB.Interval,
				Timeout:      cfg.Provider.Highlights.CB.Timeout,
				FailureRatio: cfg.Provider.Highlights.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	providers := []domain.HighlightProvider{highlightsClient}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Viewer-relations cache (optional). Ranking scores are never cached.
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("viewer cache enabled",
			zap.Duration("viewer_ttl", cfg.Cache.ViewerTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("viewer cache disabled")
	}

	// Services
	feedSvc := service.NewFeedService(repo, cache, cfg.Cache.ViewerTTL, log.Logger)
	searchSvc := service.NewSearchService(repo, log.Logger)
	syncSvc := service.NewHighlightSyncService(repo, providers, log.Logger)
	trendingSvc := service.NewTrendingService(repo, cfg.Trending.Window, log.Logger)
	statsSvc := service.NewStatsService(repo, log.Logger)

	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	v := validator.New()

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			AppName:   cfg.App.Name,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		feedSvc,
		searchSvc,
		syncSvc,
		trendingSvc,
		statsSvc,
		db,
		v,
		log.Logger,
	)

	// Background jobs under distributed locks
	syncScheduler := job.NewSyncScheduler(
		syncSvc,
		job.Config{
			Interval:  cfg.Sync.Interval,
			Timeout:   cfg.Sync.Timeout,
			OnStartup: cfg.Sync.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	syncScheduler.Start(cfg.Sync.OnStartup)

	trendingScheduler := job.NewTrendingScheduler(
		trendingSvc,
		job.Config{
			Interval:  cfg.Trending.Interval,
			Timeout:   cfg.Trending.Timeout,
			OnStartup: cfg.Trending.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	trendingScheduler.Start(cfg.Trending.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		syncScheduler.Stop()
		trendingScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
