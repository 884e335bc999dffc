package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes committed delivery status changes.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewProducer creates a Producer. Without broker settings it returns nil, nil;
// a nil Producer publishes nothing.
func NewProducer(logger logx.Logger, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Net.MaxOpenRequests = 1

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newProducer(p, topic, logger), nil
}

func newProducer(p sarama.SyncProducer, topic string, logger logx.Logger) *Producer {
	return &Producer{producer: p, topic: topic, logger: logger}
}

// PublishStatusChange sends the change keyed by delivery id, so changes of
// one delivery stay ordered within a partition.
func (p *Producer) PublishStatusChange(ctx context.Context, change domain.StatusChange) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := uuid.New()
	body, err := json.Marshal(fromStatusChange(id, change))
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(deliveryKey(change.Delivery.ID)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(id.String())},
			{Key: []byte("type"), Value: []byte("delivery.status_changed")},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}
	p.logger.Debug("status change published",
		logx.String("event_id", id.String()),
		logx.Int64("delivery_id", change.Delivery.ID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
