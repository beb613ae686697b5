package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"newshub/internal/cache"
	"newshub/internal/config"
	"newshub/internal/events"
	"newshub/internal/handler"
	"newshub/internal/imagehost"
	"newshub/internal/infrastructure/database"
	"newshub/internal/logger"
	"newshub/internal/metrics"
	"newshub/internal/middleware"
	"newshub/internal/repository"
	"newshub/internal/scheduler"
	"newshub/internal/service"
	"newshub/internal/validator"
)

const version = "1.0.0"

// storage bundles the selected article engine with its health check and cleanup.
type storage struct {
	articles repository.ArticleRepository
	check    handler.HealthCheck
	close    func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal("Failed to initialise logger",
			slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	store, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage",
			slog.String("driver", cfg.StorageDriver),
			slog.String("error", err.Error()))
	}
	defer store.close()

	if cfg.SeedSampleData {
		n, err := repository.SeedSampleArticles(ctx, store.articles)
		if err != nil {
			logger.Fatal("Failed to seed sample articles",
				slog.String("error", err.Error()))
		}
		if n > 0 {
			logger.Info("Seeded sample articles", slog.Int("count", n))
		}
	}

	checks := map[string]handler.HealthCheck{"storage": store.check}

	// Feed cache
	var feedCache service.FeedCache = cache.NoopFeedCache{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		redisCache := cache.NewRedisFeedCache(client, cfg.FeedTTL())
		checks["redis"] = redisCache.Ping
		feedCache = redisCache
	}

	// Lifecycle events
	var publisher interface {
		service.EventPublisher
		Close() error
	} = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher",
				slog.String("error", err.Error()))
		}
	}()

	// Services
	articleService := service.NewArticleService(store.articles, feedCache, publisher)
	feedService := service.NewFeedService(store.articles, feedCache, service.FeedConfig{
		BaseURL:  cfg.BaseURL,
		MaxItems: cfg.FeedMaxItems,
		TTL:      cfg.FeedTTL(),
	})
	statsService := service.NewStatsService(store.articles, cfg.StatsSubscribers)
	scheduleService := service.NewScheduleService(store.articles, feedCache, publisher)

	// Scheduled publishing
	sched := scheduler.New(cfg.SchedulerJobTimeout)
	if cfg.SchedulerEnabled {
		if err := sched.Add(cfg.SchedulerSpec, scheduler.PublishDueJob(scheduleService)); err != nil {
			logger.Fatal("Failed to schedule publishing job",
				slog.String("error", err.Error()))
		}
		sched.Start()
		if next, ok := sched.Next(scheduler.PublishDueJobName); ok {
			logger.Info("Next scheduled publishing run", slog.Time("at", next))
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
		go limiter.Run(ctx, time.Minute)
	}

	uploader := imagehost.NewImgBBClient(cfg.ImgBBAPIKey, cfg.ImgBBTimeout,
		imagehost.WithEndpoint(cfg.ImgBBEndpoint))

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router, err := handler.NewRouter(handler.Handlers{
		Articles: handler.NewArticleHandler(articleService, validator.NewValidator()),
		Feed:     handler.NewFeedHandler(feedService),
		Stats:    handler.NewStatsHandler(statsService),
		Upload:   handler.NewUploadHandler(uploader, cfg.UploadMaxBytes),
		Health:   handler.NewHealthHandler(version, checks),
	}, handler.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:    limiter,
		AccessLog:      true,
	})
	if err != nil {
		logger.Fatal("Failed to build router",
			slog.String("error", err.Error()))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}
	sched.Stop(shutdownCtx)

	logger.Info("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		poolCfg := database.PoolConfig{
			Host:              cfg.DBHost,
			Port:              cfg.DBPort,
			User:              cfg.DBUser,
			Password:          cfg.DBPassword,
			Database:          cfg.DBName,
			SSLMode:           cfg.DBSSLMode,
			MaxConns:          cfg.DBMaxConns,
			MinConns:          cfg.DBMinConns,
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(cfg.MigrationsPath, poolCfg.URL()); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPostgres(ctx, poolCfg)
		if err != nil {
			return nil, err
		}

		poolStats := metrics.NewPoolStatsCollector(pool)
		poolStats.Start(15 * time.Second)

		return &storage{
			articles: repository.NewPostgresArticleRepository(pool),
			check:    handler.HealthCheck(database.PostgresCheck(pool)),
			close: func() {
				poolStats.Stop()
				pool.Close()
			},
		}, nil

	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormArticleRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &storage{
			articles: repo,
			check:    handler.HealthCheck(database.GormCheck(db)),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	case config.StorageMemory:
		return &storage{
			articles: repository.NewMemoryArticleRepository(),
			check:    func(context.Context) error { return nil },
			close:    func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
