package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
)

// Redis - единственный клиент процесса: кеш геокодирования, очередь задач и хранилище результатов
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis подключается к Redis и проверяет соединение. Процессу без Redis делать нечего (воркер).
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	r := NewRedisClient(cfg, logger)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Health(ctx); err != nil {
		_ = r.client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)
	return r, nil
}

// NewRedisClient создает клиент без проверки соединения. go-redis переподключается
// на каждой команде, поэтому клиент начинает работать, как только Redis поднимется.
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Redis{
		client: client,
		logger: logger,
	}
}

// NewRedisFromClient оборачивает уже созданный клиент (тесты с miniredis)
func NewRedisFromClient(client *redis.Client, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Logger() *zap.Logger {
	return r.logger
}
