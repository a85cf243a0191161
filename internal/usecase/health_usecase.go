package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/geo-engine/internal/usecase/dto"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

// HealthChecker - зависимость, умеющая проверить свою доступность
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StorePool - пул соединений хранилища
type StorePool interface {
	HealthChecker
	InUse() int64
}

// HealthUseCase - состояние хранилища и очереди задач
type HealthUseCase struct {
	store  StorePool
	queue  HealthChecker
	logger *zap.Logger
}

// NewHealthUseCase - queue может быть nil, если очередь не настроена
func NewHealthUseCase(store StorePool, queue HealthChecker, logger *zap.Logger) *HealthUseCase {
	return &HealthUseCase{
		store:  store,
		queue:  queue,
		logger: logger,
	}
}

// Check возвращает сводку и признак готовности. Сервис не готов, если недоступно хранилище.
func (uc *HealthUseCase) Check(ctx context.Context) (dto.HealthResponse, bool) {
	resp := dto.HealthResponse{
		Status: statusOK,
		Store:  statusOK,
		Queue:  statusOK,
	}

	if err := uc.store.Health(ctx); err != nil {
		uc.logger.Warn("Store health check failed", zap.Error(err))
		resp.Store = statusDown
	}
	resp.ConnectionsInUse = uc.store.InUse()

	if uc.queue == nil {
		resp.Queue = statusDown
	} else if err := uc.queue.Health(ctx); err != nil {
		uc.logger.Warn("Queue health check failed", zap.Error(err))
		resp.Queue = statusDown
	}

	ready := resp.Store == statusOK
	if !ready || resp.Queue != statusOK {
		resp.Status = statusDegraded
	}

	return resp, ready
}
