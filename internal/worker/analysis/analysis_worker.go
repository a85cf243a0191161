package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geo-engine/internal/config"
	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/worker"
)

const (
	workerName = "slow-analysis"

	// readBlock - сколько ждать новых сообщений за один XREADGROUP
	readBlock = time.Second
	// errorPause - пауза после ошибки чтения из очереди
	errorPause = time.Second
	// maxCauseLen - максимальная длина причины отказа в записи задачи
	maxCauseLen = 200
	// defaultClaimIdle - простой сообщения в PEL, после которого его забирает другой потребитель
	defaultClaimIdle = 5 * time.Minute
	// maxClaimInterval - как часто проверять PEL на зависшие сообщения
	maxClaimInterval = 30 * time.Second

	interruptedCause = "analysis interrupted: worker shutting down"
)

// Processor выполняет анализ входных данных задачи
type Processor interface {
	Run(ctx context.Context, inputData string) (string, error)
}

// AnalysisWorker забирает задачи из стрима, выполняет анализ и записывает
// итоговое состояние в хранилище задач. Сообщение подтверждается только после
// записи конечного состояния, иначе оно остается в PEL и позже забирается через XAUTOCLAIM.
type AnalysisWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	taskRepo     repository.TaskRepository
	processor    Processor
	metrics      *metrics.Metrics
	stream       string
	consumerName string
	batchSize    int64
	concurrency  int
	maxRetries   int
	retryDelay   time.Duration
	resultTTL    time.Duration

	claimIdle     time.Duration
	claimInterval time.Duration
	lastClaim     time.Time
}

// NewAnalysisWorker создает новый AnalysisWorker
func NewAnalysisWorker(
	streamRepo repository.StreamRepository,
	taskRepo repository.TaskRepository,
	processor Processor,
	workerCfg config.WorkerConfig,
	tasksCfg config.TasksConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AnalysisWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), uuid.NewString()[:8])

	stream := tasksCfg.Stream
	if stream == "" {
		stream = domain.StreamAnalysisTasks
	}

	claimIdle := workerCfg.ClaimIdle
	if claimIdle <= 0 {
		claimIdle = defaultClaimIdle
	}

	return &AnalysisWorker{
		BaseWorker:   worker.NewBaseWorker(workerName, workerCfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		taskRepo:     taskRepo,
		processor:    processor,
		metrics:      m,
		stream:       stream,
		consumerName: consumerName,
		batchSize:    int64(max(workerCfg.BatchSize, 1)),
		concurrency:  max(workerCfg.Concurrency, 1),
		maxRetries:   max(workerCfg.MaxRetries, 0),
		retryDelay:   time.Second,
		resultTTL:    tasksCfg.ResultTTL,

		claimIdle:     claimIdle,
		claimInterval: min(claimIdle, maxClaimInterval),
	}
}

// Start запускает воркер
func (w *AnalysisWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AnalysisWorker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("concurrency", w.concurrency))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// отмена ctx или Stop прерывают ожидание в XREADGROUP и текущий анализ
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			w.reclaimStale(runCtx)

			if _, err := w.processBatch(runCtx); err != nil {
				if runCtx.Err() != nil {
					continue
				}
				logger.Error("Failed to process batch", zap.Error(err))
				sleep(runCtx, errorPause)
			}
		}
	}
}

// processBatch читает пачку сообщений и обрабатывает их параллельно, не больше concurrency одновременно
func (w *AnalysisWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ReadGroup(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.batchSize, readBlock)
	if err != nil {
		return 0, fmt.Errorf("failed to read tasks: %w", err)
	}
	w.processMessages(ctx, messages)
	return len(messages), nil
}

// reclaimStale раз в claimInterval забирает сообщения, зависшие в PEL дольше claimIdle,
// и обрабатывает их заново. Уже завершенные задачи только подтверждаются.
func (w *AnalysisWorker) reclaimStale(ctx context.Context) {
	if time.Since(w.lastClaim) < w.claimInterval {
		return
	}
	w.lastClaim = time.Now()

	messages, err := w.streamRepo.ClaimStale(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.claimIdle, w.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger().Error("Failed to claim stale messages", zap.Error(err))
		}
		return
	}
	w.processMessages(ctx, messages)
}

// processMessages обрабатывает сообщения параллельно, не больше concurrency одновременно
func (w *AnalysisWorker) processMessages(ctx context.Context, messages []domain.StreamMessage) {
	if len(messages) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for _, msg := range messages {
		g.Go(func() error {
			w.handleMessage(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()
}

// handleMessage доводит задачу до конечного состояния и подтверждает сообщение.
// Если конечное состояние записать не удалось, сообщение не подтверждается.
func (w *AnalysisWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	// запись результата и ACK должны пройти и после отмены ctx
	storeCtx := context.WithoutCancel(ctx)
	if !w.finishMessage(ctx, storeCtx, msg, logger) {
		return
	}
	if err := w.streamRepo.AckMessage(storeCtx, w.stream, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.Error(err))
	}
}

// finishMessage возвращает true, если сообщение можно подтверждать
func (w *AnalysisWorker) finishMessage(ctx, storeCtx context.Context, msg domain.StreamMessage, logger *zap.Logger) bool {
	var event domain.AnalysisTaskEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.TaskID == "" {
		logger.Warn("Malformed task message, skipping", zap.String("data", msg.Data), zap.Error(err))
		return true
	}
	logger = logger.With(zap.String("task_id", event.TaskID))

	// повторная доставка уже завершенной задачи
	if task, err := w.taskRepo.Get(storeCtx, event.TaskID); err == nil && task.Status.IsTerminal() {
		logger.Debug("Task already finished", zap.String("status", string(task.Status)))
		return true
	}

	result, err := w.runWithRetries(ctx, event.InputData, logger)
	if err != nil {
		cause := summarize(err)
		if ctx.Err() != nil {
			cause = interruptedCause
		}

		logger.Warn("Analysis failed", zap.String("cause", cause), zap.Error(err))
		if err := w.taskRepo.MarkFailure(storeCtx, event.TaskID, cause, w.resultTTL); err != nil {
			logger.Error("Failed to record task failure, leaving message pending", zap.Error(err))
			return false
		}
		w.metrics.TaskProcessed(string(domain.TaskFailure))
		return true
	}

	if err := w.taskRepo.MarkSuccess(storeCtx, event.TaskID, result, w.resultTTL); err != nil {
		logger.Error("Failed to record task result, leaving message pending", zap.Error(err))
		return false
	}
	w.metrics.TaskProcessed(string(domain.TaskSuccess))
	logger.Info("Analysis completed")
	return true
}

func (w *AnalysisWorker) runWithRetries(ctx context.Context, input string, logger *zap.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying analysis", zap.Int("attempt", attempt), zap.Error(lastErr))
			if !sleep(ctx, w.retryDelay) {
				return "", ctx.Err()
			}
		}

		result, err := w.processor.Run(ctx, input)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// summarize - однострочная причина отказа без стека, не длиннее maxCauseLen
func summarize(err error) string {
	cause := strings.Join(strings.Fields(err.Error()), " ")
	if cause == "" {
		cause = "analysis failed"
	}
	if r := []rune(cause); len(r) > maxCauseLen {
		cause = string(r[:maxCauseLen-3]) + "..."
	}
	return cause
}

// sleep возвращает false, если ctx отменен раньше
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
