package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/pkg/errors"
)

// DefaultProvincesLimit - limit по умолчанию для списка провинций
const DefaultProvincesLimit = 10

// ProvinceUseCase - запросы по административным регионам
type ProvinceUseCase struct {
	spatialRepo repository.SpatialRepository
	logger      *zap.Logger
}

// NewProvinceUseCase - создание нового ProvinceUseCase
func NewProvinceUseCase(spatialRepo repository.SpatialRepository, logger *zap.Logger) *ProvinceUseCase {
	return &ProvinceUseCase{
		spatialRepo: spatialRepo,
		logger:      logger,
	}
}

// ListProvinces возвращает не более limit провинций. Пустой результат - ErrProvincesNotFound.
func (uc *ProvinceUseCase) ListProvinces(ctx context.Context, limit int) ([]domain.Province, error) {
	if limit < 0 {
		return nil, errors.ErrInvalidLimit.WithDetails(map[string]interface{}{
			"limit": limit,
		})
	}

	provinces, err := uc.spatialRepo.ListProvinces(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to list provinces", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	if len(provinces) == 0 {
		return nil, errors.ErrProvincesNotFound
	}

	return provinces, nil
}

// CitiesInProvince - города, пересекающие провинцию. Неизвестная провинция дает пустую коллекцию.
func (uc *ProvinceUseCase) CitiesInProvince(ctx context.Context, provinceName string) (domain.FeatureCollection, error) {
	provinceName = strings.TrimSpace(provinceName)
	if provinceName == "" {
		return domain.FeatureCollection{}, errors.ErrValidation.WithDetails(map[string]interface{}{
			"province_name": "required",
		})
	}

	cities, err := uc.spatialRepo.CitiesInProvince(ctx, provinceName)
	if err != nil {
		uc.logger.Error("Failed to find cities in province",
			zap.String("province", provinceName),
			zap.Error(err),
		)
		return domain.FeatureCollection{}, err
	}

	return domain.NewFeatureCollection(cities), nil
}
