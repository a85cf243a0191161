package repository

import (
	"context"
	"time"

	"github.com/geo-engine/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ReadGroup читает пачку новых сообщений consumer group, ожидая не дольше block.
	// Пустой результат без ошибки означает, что сообщений нет.
	ReadGroup(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error)

	// ClaimStale забирает себе сообщения, которые висят в PEL группы дольше minIdle
	// (потребитель упал или не смог записать результат)
	ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// Publish публикует сообщение в стрим с ограничением длины, возвращает ID сообщения
	Publish(ctx context.Context, stream string, maxLen int64, data interface{}) (string, error)
}
