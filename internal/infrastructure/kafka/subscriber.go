package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Handler processes one consumed message. A returned error leaves the offset
// uncommitted.
type Handler func(ctx context.Context, msg domain.Message) error

type DefaultKafkaSubscriber struct {
	reader *kafka.Reader
}

func NewDefaultKafkaSubscriber(cfg config.KafkaService, topic string) (*DefaultKafkaSubscriber, error) {
	mechanism, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}
	dialer := &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
	}
	if cfg.TLSEnabled {
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &DefaultKafkaSubscriber{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  Brokers(cfg),
			Topic:    topic,
			GroupID:  cfg.ConsumerGroup,
			MinBytes: 1,
			MaxBytes: 10 * 1024 * 1024,
			Dialer:   dialer,
		}),
	}, nil
}

// Run blocks until ctx is cancelled.
func (s *DefaultKafkaSubscriber) Run(ctx context.Context, handle Handler) error {
	topic := s.reader.Config().Topic
	slog.Info("kafka subscriber started", "topic", topic, "group", s.reader.Config().GroupID)
	for {
		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", topic, err)
		}

		if err := handle(ctx, domain.Message{Key: m.Key, Value: m.Value}); err != nil {
			slog.Error("kafka message handling failed",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
			continue
		}
		if err := s.reader.CommitMessages(ctx, m); err != nil {
			slog.Error("kafka commit failed", "topic", m.Topic, "offset", m.Offset, "error", err)
		}
	}
}

func (s *DefaultKafkaSubscriber) Close() error {
	return s.reader.Close()
}
