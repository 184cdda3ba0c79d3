package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/car-catalog/internal/config"
	"github.com/iliyamo/car-catalog/internal/database"
	"github.com/iliyamo/car-catalog/internal/handler"
	"github.com/iliyamo/car-catalog/internal/middleware"
	"github.com/iliyamo/car-catalog/internal/queue"
	"github.com/iliyamo/car-catalog/internal/repository"
	"github.com/iliyamo/car-catalog/internal/router"
	"github.com/iliyamo/car-catalog/internal/server"
	queue_publisher "github.com/iliyamo/car-catalog/internal/service"
	"github.com/iliyamo/car-catalog/internal/viewer"
)

func main() {
	cfg, err := config.Load() // environment and optional .env
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage is reset and seeded before anything can read it.
	db, dialect, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()

	summary, err := database.Initialize(ctx, db, dialect)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	logger.Info("Catalog seeded",
		zap.String("driver", dialect.Driver),
		zap.Int64("manufacturers", summary.Manufacturers),
		zap.Int64("models", summary.Models),
		zap.Int64("cars", summary.Cars),
	)

	publisher := queue_publisher.NewPublisher(cfg.RabbitMQURL, logger)
	_ = publisher.PublishCatalogSeeded(ctx, queue.CatalogSeededEvent{
		Driver:        dialect.Driver,
		Manufacturers: summary.Manufacturers,
		Models:        summary.Models,
		Cars:          summary.Cars,
		SeededAt:      time.Now().UTC().Format(time.RFC3339),
	})

	var rdb *redis.Client
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		if rdb = config.NewRedisClient(ctx, cfg.Redis); rdb == nil {
			logger.Warn("Redis unreachable, cache and rate limit disabled", zap.String("addr", cfg.Redis.Address()))
		} else {
			defer rdb.Close()
		}
	}

	catalog := handler.NewCatalogHandler(
		repository.NewCarRepo(db),
		repository.NewManufacturerRepo(db),
		repository.NewModelRepo(db),
		logger,
	)
	srv := server.New(cfg.Addr(), logger,
		func(e *echo.Echo) { router.RegisterRoutes(e, handler.Health(db), catalog) },
		middleware.RequestLogger(logger),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, logger),
		middleware.NewRedisCache(cfg.Cache, rdb, logger),
	)
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	if cfg.Viewer.Enabled {
		ctrl := viewer.NewController(viewer.NewClient(cfg.Viewer.URL, cfg.Viewer.Timeout))
		if err := viewer.NewConsole(ctrl, "Car Database Viewer").Run(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Error("Viewer stopped", zap.Error(err))
		}
	} else {
		select {
		case <-ctx.Done():
		case err := <-srv.Done():
			if err != nil {
				logger.Error("Server exited", zap.Error(err))
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
