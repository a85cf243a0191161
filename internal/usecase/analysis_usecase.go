package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/pkg/errors"
)

// AnalysisUseCase - синхронный пространственный анализ
type AnalysisUseCase struct {
	spatialRepo repository.SpatialRepository
	logger      *zap.Logger
}

// NewAnalysisUseCase - создание нового AnalysisUseCase
func NewAnalysisUseCase(spatialRepo repository.SpatialRepository, logger *zap.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		spatialRepo: spatialRepo,
		logger:      logger,
	}
}

// Buffer строит буфер radiusKm вокруг точки.
// Радиус возвращается в properties.original_radius_km в том виде, в каком пришел.
func (uc *AnalysisUseCase) Buffer(ctx context.Context, feature *domain.Feature, radiusKm float64) (*domain.Feature, error) {
	if feature == nil || feature.Geometry == nil || feature.Geometry.Kind() != domain.KindPoint {
		return nil, errors.ErrGeometryNotPoint
	}

	buffered, err := uc.spatialRepo.Buffer(ctx, feature.Geometry, radiusKm)
	if err != nil {
		uc.logger.Error("Failed to build buffer", zap.Float64("radius_km", radiusKm), zap.Error(err))
		return nil, err
	}

	result := domain.NewFeature(buffered, domain.Properties{
		domain.PropOriginalRadiusKm: radiusKm,
	})
	return &result, nil
}

// IntersectingCities - города, пересекающие полигон или мультиполигон
func (uc *AnalysisUseCase) IntersectingCities(ctx context.Context, feature *domain.Feature) (domain.FeatureCollection, error) {
	if feature == nil || feature.Geometry == nil || !feature.Geometry.IsPolygonal() {
		return domain.FeatureCollection{}, errors.ErrGeometryNotPolygonal
	}

	cities, err := uc.spatialRepo.IntersectingCities(ctx, feature.Geometry)
	if err != nil {
		uc.logger.Error("Failed to find intersecting cities", zap.Error(err))
		return domain.FeatureCollection{}, err
	}

	return domain.NewFeatureCollection(cities), nil
}
