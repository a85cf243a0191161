package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/pkg/errors"
)

// enqueueFailedCause - причина, записываемая в задачу, которую не удалось поставить в очередь
const enqueueFailedCause = "task could not be enqueued"

// TaskUseCase - постановка медленного анализа в очередь и опрос результата
type TaskUseCase struct {
	taskRepo   repository.TaskRepository
	streamRepo repository.StreamRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
	stream     string
	maxLen     int64
	resultTTL  time.Duration
}

// NewTaskUseCase - создание нового TaskUseCase
func NewTaskUseCase(
	taskRepo repository.TaskRepository,
	streamRepo repository.StreamRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	stream string,
	maxLen int64,
	resultTTL time.Duration,
) *TaskUseCase {
	if stream == "" {
		stream = domain.StreamAnalysisTasks
	}
	return &TaskUseCase{
		taskRepo:   taskRepo,
		streamRepo: streamRepo,
		metrics:    m,
		logger:     logger,
		stream:     stream,
		maxLen:     maxLen,
		resultTTL:  resultTTL,
	}
}

// Submit регистрирует задачу в состоянии PENDING и публикует ее в стрим.
// Не ждет выполнения.
func (uc *TaskUseCase) Submit(ctx context.Context, inputData string) (string, error) {
	taskID := uuid.New().String()

	// запись PENDING появляется до публикации, иначе быстрый воркер
	// мог бы завершить задачу раньше, чем она станет видна для опроса
	if err := uc.taskRepo.CreatePending(ctx, taskID, uc.resultTTL); err != nil {
		uc.logger.Error("Failed to register task", zap.String("task_id", taskID), zap.Error(err))
		return "", err
	}

	event := domain.AnalysisTaskEvent{
		TaskID:    taskID,
		InputData: inputData,
	}
	if _, err := uc.streamRepo.Publish(ctx, uc.stream, uc.maxLen, event); err != nil {
		uc.logger.Error("Failed to enqueue task", zap.String("task_id", taskID), zap.Error(err))

		// без сообщения в стриме задача навсегда осталась бы PENDING
		if markErr := uc.taskRepo.MarkFailure(context.WithoutCancel(ctx), taskID, enqueueFailedCause, uc.resultTTL); markErr != nil {
			uc.logger.Warn("Failed to mark unqueued task", zap.String("task_id", taskID), zap.Error(markErr))
		}
		if _, ok := errors.As(err); ok {
			return "", err
		}
		return "", errors.ErrJobBackend.WithCause(err)
	}

	uc.metrics.TaskSubmitted()
	uc.logger.Debug("Task submitted", zap.String("task_id", taskID))

	return taskID, nil
}

// Poll - текущее состояние задачи. Неизвестный ID дает ErrTaskNotFound, а не PENDING.
func (uc *TaskUseCase) Poll(ctx context.Context, taskID string) (*domain.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, errors.ErrTaskNotFound
	}

	task, err := uc.taskRepo.Get(ctx, taskID)
	if err != nil {
		if !errors.Is(err, errors.ErrTaskNotFound) {
			uc.logger.Error("Failed to read task state", zap.String("task_id", taskID), zap.Error(err))
		}
		return nil, err
	}

	return task, nil
}
