package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/geo-engine/internal/domain"
	apperrors "github.com/geo-engine/internal/pkg/errors"
)

// EncodeGeometry сериализует геометрию в GeoJSON для передачи одним параметром
// в ST_GeomFromGeoJSON.
func EncodeGeometry(g *domain.Geometry) (string, error) {
	if g == nil {
		return "", apperrors.ErrInvalidGeometry.WithCause(fmt.Errorf("geometry is nil"))
	}

	data, err := json.Marshal(g)
	if err != nil {
		return "", apperrors.ErrInvalidGeometry.WithCause(err)
	}
	return string(data), nil
}

// DecodeGeometry разбирает GeoJSON из ST_AsGeoJSON.
// Ответ хранилища, который не удалось разобрать, считается ошибкой вычисления.
func DecodeGeometry(text string) (*domain.Geometry, error) {
	if text == "" {
		return nil, apperrors.ErrStoreCompute.WithCause(fmt.Errorf("store returned empty geometry"))
	}

	var g domain.Geometry
	if err := json.Unmarshal([]byte(text), &g); err != nil {
		return nil, apperrors.ErrStoreCompute.WithCause(fmt.Errorf("decode store geometry: %w", err))
	}
	return &g, nil
}

// DecodeFeature собирает Feature из GeoJSON хранилища и свойств, полученных вызывающим кодом
func DecodeFeature(text string, props domain.Properties) (domain.Feature, error) {
	g, err := DecodeGeometry(text)
	if err != nil {
		return domain.Feature{}, err
	}
	return domain.NewFeature(g, props), nil
}
