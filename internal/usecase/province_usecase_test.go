package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	apperrors "github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/usecase"
)

func TestProvinceUseCase_ListProvinces(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	provinces := []domain.Province{
		{Name: "北京市", Geometry: domain.NewPoint(116.4, 39.9)},
		{Name: "上海市", Geometry: domain.NewPoint(121.47, 31.23)},
	}

	t.Run("limit is passed to the store", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		repo.On("ListProvinces", ctx, 2).Return(provinces, nil).Once()

		got, err := uc.ListProvinces(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertExpectations(t)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		repo.On("ListProvinces", ctx, 0).Return([]domain.Province{}, nil).Once()

		got, err := uc.ListProvinces(ctx, 0)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrProvincesNotFound)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		_, err := uc.ListProvinces(ctx, -1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidLimit)
		repo.AssertNotCalled(t, "ListProvinces", mock.Anything, mock.Anything)
	})

	t.Run("store unavailable", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		repo.On("ListProvinces", ctx, 10).Return(nil, apperrors.ErrStoreUnavailable).Once()

		_, err := uc.ListProvinces(ctx, 10)
		assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	})
}

func TestProvinceUseCase_CitiesInProvince(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("unknown province is an empty collection", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		repo.On("CitiesInProvince", ctx, "Atlantis").Return([]domain.Feature{}, nil).Once()

		fc, err := uc.CitiesInProvince(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Equal(t, domain.TypeFeatureCollection, fc.Type)
		assert.Empty(t, fc.Features)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		cities := []domain.Feature{
			domain.NewFeature(domain.NewPoint(113.26, 23.13), domain.Properties{domain.PropName: "广州市"}),
		}
		repo.On("CitiesInProvince", ctx, "广东省").Return(cities, nil).Once()

		fc, err := uc.CitiesInProvince(ctx, " 广东省 ")
		require.NoError(t, err)
		assert.Len(t, fc.Features, 1)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		repo := &MockSpatialRepository{}
		uc := usecase.NewProvinceUseCase(repo, logger)

		_, err := uc.CitiesInProvince(ctx, "  ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "CitiesInProvince", mock.Anything, mock.Anything)
	})
}
