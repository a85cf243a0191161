package worker

import (
	"context"
)

// Worker - долгоживущий потребитель очереди
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться после текущей пачки
	Stop() error

	Name() string
}
