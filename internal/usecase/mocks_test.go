package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/geo-engine/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetLocation(ctx context.Context, address string) (*domain.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockCacheRepository) SetLocation(ctx context.Context, address string, loc *domain.Location, ttl time.Duration) error {
	args := m.Called(ctx, address, loc, ttl)
	return args.Error(0)
}

// MockGeocoder is a mock of Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, lon, lat float64) (*domain.Address, error) {
	args := m.Called(ctx, lon, lat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

// MockSpatialRepository is a mock of SpatialRepository
type MockSpatialRepository struct {
	mock.Mock
}

func (m *MockSpatialRepository) ListProvinces(ctx context.Context, limit int) ([]domain.Province, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Province), args.Error(1)
}

func (m *MockSpatialRepository) Buffer(ctx context.Context, g *domain.Geometry, radiusKm float64) (*domain.Geometry, error) {
	args := m.Called(ctx, g, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Geometry), args.Error(1)
}

func (m *MockSpatialRepository) IntersectingCities(ctx context.Context, g *domain.Geometry) ([]domain.Feature, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feature), args.Error(1)
}

func (m *MockSpatialRepository) CitiesInProvince(ctx context.Context, provinceName string) ([]domain.Feature, error) {
	args := m.Called(ctx, provinceName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feature), args.Error(1)
}

func (m *MockSpatialRepository) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTaskRepository is a mock of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreatePending(ctx context.Context, taskID string, ttl time.Duration) error {
	args := m.Called(ctx, taskID, ttl)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) MarkSuccess(ctx context.Context, taskID, result string, ttl time.Duration) error {
	args := m.Called(ctx, taskID, result, ttl)
	return args.Error(0)
}

func (m *MockTaskRepository) MarkFailure(ctx context.Context, taskID, cause string, ttl time.Duration) error {
	args := m.Called(ctx, taskID, cause, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ReadGroup(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, maxLen int64, data interface{}) (string, error) {
	args := m.Called(ctx, stream, maxLen, data)
	return args.String(0), args.Error(1)
}

// MockStorePool is a mock of StorePool
type MockStorePool struct {
	mock.Mock
}

func (m *MockStorePool) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorePool) InUse() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
