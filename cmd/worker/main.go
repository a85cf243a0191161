package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/pkg/logger"
	"github.com/geo-engine/internal/repository/cache"
	redisRepo "github.com/geo-engine/internal/repository/redis"
	"github.com/geo-engine/internal/usecase"
	"github.com/geo-engine/internal/worker"
	"github.com/geo-engine/internal/worker/analysis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "geo-engine-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Analysis Worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Tasks.Stream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("concurrency", cfg.Worker.Concurrency),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("task_duration", cfg.Worker.TaskDuration))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Metrics endpoint
	m := metrics.New()
	var metricsServer *http.Server
	if cfg.Worker.MetricsPort > 0 {
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// 5. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	taskRepo := redisRepo.NewTaskRepository(redisClient.Client(), log)

	// 6. Initialize use cases
	slowAnalysisUC := usecase.NewSlowAnalysisUseCase(cfg.Worker.TaskDuration, log)

	// 7. Initialize workers
	analysisWorker := analysis.NewAnalysisWorker(
		streamRepo,
		taskRepo,
		slowAnalysisUC,
		cfg.Worker,
		cfg.Tasks,
		m,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(analysisWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Error("All workers exited")
	}

	// Stop сначала дает воркерам записать состояние прерванных задач
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	log.Info("Worker shutdown complete")
}
