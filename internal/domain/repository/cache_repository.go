package repository

import (
	"context"
	"time"

	"github.com/geo-engine/internal/domain"
)

// CacheRepository - кеш результатов геокодирования
type CacheRepository interface {
	// GetLocation получает результат геокодирования адреса, (nil, nil) при промахе
	GetLocation(ctx context.Context, address string) (*domain.Location, error)

	// SetLocation сохраняет результат геокодирования адреса
	SetLocation(ctx context.Context, address string, loc *domain.Location, ttl time.Duration) error
}
