package main

// @title Geo Engine API
// @version 1.0.0
// @description Геопространственный сервис: геокодирование через AMap, провинции и города Китая из PostGIS,
// @description буфер вокруг точки, поиск городов, пересекающих полигон, и фоновый анализ через Redis Streams.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/geo-engine/docs"
	"github.com/geo-engine/internal/config"
	httpDelivery "github.com/geo-engine/internal/delivery/http"
	"github.com/geo-engine/internal/delivery/http/handler"
	"github.com/geo-engine/internal/infrastructure/amap"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/pkg/logger"
	"github.com/geo-engine/internal/repository/cache"
	"github.com/geo-engine/internal/repository/postgres"
	redisRepo "github.com/geo-engine/internal/repository/redis"
	"github.com/geo-engine/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "geo-engine-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geo Engine API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Int("db_min_conns", cfg.Database.MinConns),
		zap.Int("db_max_conns", cfg.Database.MaxConns),
	)

	m := metrics.New()

	// 3. Connection pool. Недоступная база не мешает старту:
	// пул остается в деградированном режиме и запросы к хранилищу получают 500
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool := postgres.New(ctx, &cfg.Database, m, log)
	cancel()
	defer pool.Close()

	if pool.Degraded() {
		log.Warn("Spatial store unavailable, serving in degraded mode")
	} else {
		log.Info("PostgreSQL pool ready")
	}

	// 4. Connect to Redis. Как и с базой, недоступный Redis не мешает старту:
	// задачи получают JOB_BACKEND_ERROR, кеш геокодирования пропускается, /api/health - degraded
	redisClient := cache.NewRedisClient(&cfg.Redis, log)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Health(ctx); err != nil {
		log.Warn("Redis unavailable, task queue degraded", zap.Error(err))
	} else {
		log.Info("Redis connected")
	}
	cancel()

	// 5. Initialize repositories and clients
	spatialRepo := postgres.NewSpatialRepository(pool)
	cacheRepo := cache.NewCacheRepository(redisClient)
	taskRepo := redisRepo.NewTaskRepository(redisClient.Client(), log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocoder := amap.NewAMapClient(&cfg.Geocoder, log)

	if cfg.Geocoder.APIKey == "" {
		log.Warn("AMAP_API_KEY is not set, geocoding requests will fail")
	}

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	geocodeUC := usecase.NewGeocodeUseCase(geocoder, cacheRepo, m, log, cfg.Cache.GeocodeCacheTTL)
	provinceUC := usecase.NewProvinceUseCase(spatialRepo, log)
	analysisUC := usecase.NewAnalysisUseCase(spatialRepo, log)
	taskUC := usecase.NewTaskUseCase(
		taskRepo,
		streamRepo,
		m,
		log,
		cfg.Tasks.Stream,
		cfg.Tasks.StreamMaxLen,
		cfg.Tasks.ResultTTL,
	)
	healthUC := usecase.NewHealthUseCase(pool, redisClient, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP handlers
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)
	provinceHandler := handler.NewProvinceHandler(provinceUC, log)
	analysisHandler := handler.NewAnalysisHandler(analysisUC, taskUC, log)
	taskHandler := handler.NewTaskHandler(taskUC, log)
	healthHandler := handler.NewHealthHandler(healthUC)

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		m,
		geocodeHandler,
		provinceHandler,
		analysisHandler,
		taskHandler,
		healthHandler,
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully",
		zap.Int64("connections_in_use", pool.InUse()),
	)
}
