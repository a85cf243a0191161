package repository

import (
	"context"

	"github.com/geo-engine/internal/domain"
)

// SpatialRepository - пространственные запросы к PostGIS.
// Вся геометрия вычисляется на стороне хранилища одним запросом.
type SpatialRepository interface {
	// ListProvinces возвращает не более limit провинций
	ListProvinces(ctx context.Context, limit int) ([]domain.Province, error)

	// Buffer строит буфер radiusKm вокруг геометрии (через проекцию EPSG:3857)
	Buffer(ctx context.Context, g *domain.Geometry, radiusKm float64) (*domain.Geometry, error)

	// IntersectingCities возвращает города, пересекающие геометрию
	IntersectingCities(ctx context.Context, g *domain.Geometry) ([]domain.Feature, error)

	// CitiesInProvince возвращает города, пересекающие провинцию с заданным именем
	CitiesInProvince(ctx context.Context, provinceName string) ([]domain.Feature, error)

	// Health проверяет доступность хранилища
	Health(ctx context.Context) error
}
