package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	apperrors "github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/usecase"
)

const (
	squarePolygon = `{"type":"Polygon","coordinates":[[[116,39],[117,39],[117,40],[116,40],[116,39]]]}`
	twoSquares    = `{"type":"MultiPolygon","coordinates":[[[[116,39],[117,39],[117,40],[116,39]]],[[[120,30],[121,30],[121,31],[120,30]]]]}`
)

func mustGeometry(t *testing.T, raw string) *domain.Geometry {
	t.Helper()
	var g domain.Geometry
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	return &g
}

func featureOf(g *domain.Geometry) *domain.Feature {
	f := domain.NewFeature(g, domain.Properties{})
	return &f
}

func TestAnalysisUseCase_Buffer(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("echoes original radius exactly", func(t *testing.T) {
		for _, radius := range []float64{10, 0, -2.5, 0.1 + 0.2} {
			repo := &MockSpatialRepository{}
			uc := usecase.NewAnalysisUseCase(repo, logger)

			point := domain.NewPoint(116.397, 39.909)
			buffered := mustGeometry(t, squarePolygon)
			repo.On("Buffer", ctx, point, radius).Return(buffered, nil).Once()

			result, err := uc.Buffer(ctx, featureOf(point), radius)
			require.NoError(t, err)
			assert.Equal(t, domain.TypeFeature, result.Type)
			assert.Same(t, buffered, result.Geometry)
			assert.Equal(t, radius, result.Properties[domain.PropOriginalRadiusKm])
			repo.AssertExpectations(t)
		}
	})

	t.Run("non point geometry never reaches the store", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewAnalysisUseCase(repo, logger)

		for _, raw := range []string{squarePolygon, twoSquares} {
			_, err := uc.Buffer(ctx, featureOf(mustGeometry(t, raw)), 5)
			assert.ErrorIs(t, err, apperrors.ErrGeometryNotPoint)
		}
		_, err := uc.Buffer(ctx, nil, 5)
		assert.ErrorIs(t, err, apperrors.ErrGeometryNotPoint)

		repo.AssertNotCalled(t, "Buffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store compute failure", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewAnalysisUseCase(repo, logger)

		repo.On("Buffer", ctx, mock.Anything, 1.0).Return(nil, apperrors.ErrStoreCompute).Once()

		result, err := uc.Buffer(ctx, featureOf(domain.NewPoint(1, 1)), 1)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrStoreCompute)
	})
}

func TestAnalysisUseCase_IntersectingCities(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("polygon and multipolygon are accepted", func(t *testing.T) {
		for _, raw := range []string{squarePolygon, twoSquares} {
			repo := &MockSpatialRepository{}
			uc := usecase.NewAnalysisUseCase(repo, logger)

			area := mustGeometry(t, raw)
			city := domain.NewFeature(domain.NewPoint(116.4, 39.9), domain.Properties{domain.PropName: "北京市"})
			repo.On("IntersectingCities", ctx, area).Return([]domain.Feature{city}, nil).Once()

			fc, err := uc.IntersectingCities(ctx, featureOf(area))
			require.NoError(t, err)
			assert.Equal(t, domain.TypeFeatureCollection, fc.Type)
			require.Len(t, fc.Features, 1)
			assert.Equal(t, "北京市", fc.Features[0].Properties[domain.PropName])
		}
	})

	t.Run("no intersections is an empty collection", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewAnalysisUseCase(repo, logger)

		repo.On("IntersectingCities", ctx, mock.Anything).Return(nil, nil).Once()

		fc, err := uc.IntersectingCities(ctx, featureOf(mustGeometry(t, squarePolygon)))
		require.NoError(t, err)
		assert.NotNil(t, fc.Features)
		assert.Empty(t, fc.Features)

		body, err := json.Marshal(fc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
	})

	t.Run("point is rejected", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewAnalysisUseCase(repo, logger)

		_, err := uc.IntersectingCities(ctx, featureOf(domain.NewPoint(1, 2)))
		assert.ErrorIs(t, err, apperrors.ErrGeometryNotPolygonal)
		repo.AssertNotCalled(t, "IntersectingCities", mock.Anything, mock.Anything)
	})
}
