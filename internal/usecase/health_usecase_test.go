package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/usecase"
)

type fakeChecker struct {
	err error
}

func (f fakeChecker) Health(context.Context) error {
	return f.err
}

func TestHealthUseCase_Check(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("all healthy", func(t *testing.T) {
		pool := &MockStorePool{}
		pool.On("Health", ctx).Return(nil)
		pool.On("InUse").Return(int64(2))

		resp, ready := usecase.NewHealthUseCase(pool, fakeChecker{}, logger).Check(ctx)
		assert.True(t, ready)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, int64(2), resp.ConnectionsInUse)
	})

	t.Run("degraded pool is not ready", func(t *testing.T) {
		pool := &MockStorePool{}
		pool.On("Health", ctx).Return(apperrors.ErrPoolUnavailable)
		pool.On("InUse").Return(int64(0))

		resp, ready := usecase.NewHealthUseCase(pool, fakeChecker{}, logger).Check(ctx)
		assert.False(t, ready)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "down", resp.Store)
	})

	t.Run("queue outage keeps the service ready", func(t *testing.T) {
		pool := &MockStorePool{}
		pool.On("Health", ctx).Return(nil)
		pool.On("InUse").Return(int64(0))

		resp, ready := usecase.NewHealthUseCase(pool, fakeChecker{err: errors.New("redis down")}, logger).Check(ctx)
		assert.True(t, ready)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "down", resp.Queue)
	})
}
