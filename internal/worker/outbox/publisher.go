// Package outbox доставляет события из таблицы outbox в Kafka
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/pkg/tracing"
)

const (
	resultPublished = "published"
	resultFailed    = "failed"

	headerEventID   = "event_id"
	headerEventType = "event_type"
)

type Publisher struct {
	outboxRepo   OutboxRepository
	writer       MessageWriter
	txManager    TransactionManager
	metrics      Metrics
	topic        string
	batchSize    int
	pollInterval time.Duration
	timeProvider TimeProvider
	logger       Logger
}

func NewPublisher(
	outboxRepo OutboxRepository,
	writer MessageWriter,
	txManager TransactionManager,
	metrics Metrics,
	topic string,
	batchSize int,
	pollInterval time.Duration,
	logger Logger,
) *Publisher {
	if batchSize <= 0 {
		batchSize = 100
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Publisher{
		outboxRepo:   outboxRepo,
		writer:       writer,
		txManager:    txManager,
		metrics:      metrics,
		topic:        topic,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (p *Publisher) WithTimeProvider(tp TimeProvider) *Publisher {
	p.timeProvider = tp
	return p
}

// Run опрашивает outbox до отмены ctx
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("OutboxPublisher - Started: topic=%s, batch_size=%d, poll_interval=%s", p.topic, p.batchSize, p.pollInterval)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("OutboxPublisher - Stopped")
			return nil
		case <-ticker.C:
			if _, err := p.PublishBatch(ctx); err != nil && ctx.Err() == nil {
				p.logger.Error("OutboxPublisher - Publish failed: %v", err)
			}
		}
	}
}

// PublishBatch отправляет одну пачку неопубликованных событий.
// Выборка, отправка и отметка выполняются в одной транзакции: при ошибке брокера события остаются в очереди
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	var published int

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		events, err := p.outboxRepo.FetchPending(ctx, p.batchSize)
		if err != nil {
			return fmt.Errorf("fetch pending: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(events))
		ids := make([]uuid.UUID, 0, len(events))
		for _, e := range events {
			headers := []kafka.Header{
				{Key: headerEventID, Value: []byte(e.ID.String())},
				{Key: headerEventType, Value: []byte(e.EventType)},
			}
			msgs = append(msgs, kafka.Message{
				Topic:   p.topic,
				Key:     []byte(e.AggregateID.String()),
				Value:   e.Payload,
				Headers: tracing.InjectKafkaHeaders(ctx, headers),
				Time:    e.CreatedAt,
			})
			ids = append(ids, e.ID)
		}

		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			p.metrics.IncOutboxPublished(resultFailed, len(msgs))
			return fmt.Errorf("write messages: %w", err)
		}

		if err := p.outboxRepo.MarkPublished(ctx, ids, p.timeProvider.Now()); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}

		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("outbox: %w", err)
	}

	if published > 0 {
		p.metrics.IncOutboxPublished(resultPublished, published)
		p.logger.Info("OutboxPublisher - Events published: count=%d, topic=%s", published, p.topic)
	}
	return published, nil
}
