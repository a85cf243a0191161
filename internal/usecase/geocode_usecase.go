package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/pkg/utils"
)

// GeocodeUseCase - прямое и обратное геокодирование через внешний провайдер
type GeocodeUseCase struct {
	geocoder  repository.Geocoder
	cacheRepo repository.CacheRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewGeocodeUseCase - создание нового GeocodeUseCase. cacheRepo может быть nil.
func NewGeocodeUseCase(
	geocoder repository.Geocoder,
	cacheRepo repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		metrics:   m,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Geocode - координаты по адресу
func (uc *GeocodeUseCase) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.ErrEmptyAddress
	}

	if loc := uc.cached(ctx, address); loc != nil {
		return loc, nil
	}

	loc, err := uc.geocoder.Geocode(ctx, address)
	if err != nil {
		uc.logger.Warn("Geocoding failed", zap.String("address", address), zap.Error(err))
		return nil, err
	}
	if loc == nil {
		return nil, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{
			"address": address,
		})
	}

	if uc.cacheRepo != nil && uc.cacheTTL > 0 {
		if err := uc.cacheRepo.SetLocation(ctx, address, loc, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache geocode result", zap.Error(err))
		}
	}

	return loc, nil
}

// cached - ошибки кеша не прерывают запрос, он просто идет к провайдеру
func (uc *GeocodeUseCase) cached(ctx context.Context, address string) *domain.Location {
	if uc.cacheRepo == nil {
		return nil
	}

	loc, err := uc.cacheRepo.GetLocation(ctx, address)
	if err != nil {
		uc.logger.Warn("Geocode cache lookup failed", zap.Error(err))
		return nil
	}
	uc.metrics.GeocodeCache(loc != nil)

	return loc
}

// ReverseGeocode - адрес по координатам
func (uc *GeocodeUseCase) ReverseGeocode(ctx context.Context, lon, lat float64) (*domain.Address, error) {
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	addr, err := uc.geocoder.ReverseGeocode(ctx, lon, lat)
	if err != nil {
		uc.logger.Warn("Reverse geocoding failed",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
			zap.Error(err),
		)
		return nil, err
	}
	if addr == nil {
		return nil, errors.ErrAddressNotFound.WithDetails(map[string]interface{}{
			"location": utils.FormatLonLat(lon, lat),
		})
	}

	return addr, nil
}
