package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SlowAnalysisUseCase - имитация длительного GIS-анализа, выполняется воркером
type SlowAnalysisUseCase struct {
	duration time.Duration
	logger   *zap.Logger
}

// NewSlowAnalysisUseCase - duration задает длительность одного анализа
func NewSlowAnalysisUseCase(duration time.Duration, logger *zap.Logger) *SlowAnalysisUseCase {
	return &SlowAnalysisUseCase{
		duration: duration,
		logger:   logger,
	}
}

// Run выполняет анализ. Прерывается отменой ctx.
func (uc *SlowAnalysisUseCase) Run(ctx context.Context, inputData string) (string, error) {
	uc.logger.Debug("Analysis started", zap.String("input_data", inputData))

	if uc.duration > 0 {
		timer := time.NewTimer(uc.duration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Sprintf("analysis complete: processed '%s'", inputData), nil
}
