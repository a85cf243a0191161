package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	apperrors "github.com/geo-engine/internal/pkg/errors"
)

type taskRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewTaskRepository - хранилище состояний задач в ключах task:{id}
func NewTaskRepository(client *redis.Client, logger *zap.Logger) repository.TaskRepository {
	return &taskRepository{
		client: client,
		logger: logger,
	}
}

func (r *taskRepository) CreatePending(ctx context.Context, taskID string, ttl time.Duration) error {
	data, err := json.Marshal(domain.Task{Status: domain.TaskPending})
	if err != nil {
		return apperrors.ErrJobBackend.WithCause(err)
	}

	if err := r.client.Set(ctx, domain.TaskKey(taskID), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to create pending task",
			zap.String("task_id", taskID),
			zap.Error(err))
		return apperrors.ErrJobBackend.WithCause(fmt.Errorf("create pending task: %w", err))
	}
	return nil
}

func (r *taskRepository) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	data, err := r.client.Get(ctx, domain.TaskKey(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get task",
			zap.String("task_id", taskID),
			zap.Error(err))
		return nil, apperrors.ErrJobBackend.WithCause(fmt.Errorf("get task: %w", err))
	}

	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, apperrors.ErrJobBackend.WithCause(fmt.Errorf("decode task %s: %w", taskID, err))
	}
	task.ID = taskID
	return &task, nil
}

func (r *taskRepository) MarkSuccess(ctx context.Context, taskID, result string, ttl time.Duration) error {
	return r.finish(ctx, taskID, domain.Task{Status: domain.TaskSuccess, Result: &result}, ttl)
}

func (r *taskRepository) MarkFailure(ctx context.Context, taskID, cause string, ttl time.Duration) error {
	return r.finish(ctx, taskID, domain.Task{Status: domain.TaskFailure, Error: &cause}, ttl)
}

// finish записывает терминальное состояние. Уже завершенная задача не перезаписывается,
// поэтому повторная доставка сообщения не меняет результат, который видел клиент.
func (r *taskRepository) finish(ctx context.Context, taskID string, task domain.Task, ttl time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return apperrors.ErrJobBackend.WithCause(err)
	}

	key := domain.TaskKey(taskID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var existing domain.Task
			if json.Unmarshal(current, &existing) == nil && existing.Status.IsTerminal() {
				r.logger.Debug("Task already finished, keeping stored result",
					zap.String("task_id", taskID),
					zap.String("status", string(existing.Status)))
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		r.logger.Error("Failed to store task result",
			zap.String("task_id", taskID),
			zap.String("status", string(task.Status)),
			zap.Error(err))
		return apperrors.ErrJobBackend.WithCause(fmt.Errorf("store task result: %w", err))
	}
	return nil
}
