package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetLocation получает результат геокодирования из кеша
func (r *cacheRepository) GetLocation(ctx context.Context, address string) (*domain.Location, error) {
	data, err := r.get(ctx, GeocodeKey(address))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var loc domain.Location
	if err := json.Unmarshal(data, &loc); err != nil {
		r.logger.Error("Failed to unmarshal location from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}

	return &loc, nil
}

// SetLocation сохраняет результат геокодирования в кеше
func (r *cacheRepository) SetLocation(ctx context.Context, address string, loc *domain.Location, ttl time.Duration) error {
	data, err := json.Marshal(loc)
	if err != nil {
		r.logger.Error("Failed to marshal location", zap.Error(err))
		return fmt.Errorf("marshal location: %w", err)
	}

	return r.set(ctx, GeocodeKey(address), data, ttl)
}
