package repository

import (
	"context"
	"time"

	"github.com/geo-engine/internal/domain"
)

// TaskRepository - хранилище состояний асинхронных задач (ключ task:{id})
type TaskRepository interface {
	// CreatePending записывает начальное состояние PENDING
	CreatePending(ctx context.Context, taskID string, ttl time.Duration) error

	// Get возвращает состояние задачи; неизвестный ID - ErrTaskNotFound
	Get(ctx context.Context, taskID string) (*domain.Task, error)

	// MarkSuccess переводит задачу в SUCCESS с результатом
	MarkSuccess(ctx context.Context, taskID, result string, ttl time.Duration) error

	// MarkFailure переводит задачу в FAILURE с кратким описанием причины
	MarkFailure(ctx context.Context, taskID, cause string, ttl time.Duration) error
}
