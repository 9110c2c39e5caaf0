package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// DefaultKafkaPublisher keeps one writer per topic.
type DefaultKafkaPublisher struct {
	mu        sync.Mutex
	brokers   []string
	transport *kafka.Transport
	writers   map[string]*kafka.Writer
}

func NewDefaultKafkaPublisher(cfg config.KafkaService) (*DefaultKafkaPublisher, error) {
	mechanism, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}
	transport := &kafka.Transport{SASL: mechanism}
	if cfg.TLSEnabled {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &DefaultKafkaPublisher{
		brokers:   Brokers(cfg),
		transport: transport,
		writers:   make(map[string]*kafka.Writer),
	}, nil
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	km := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
		})
	}

	if err := k.writer(topic).WriteMessages(ctx, km...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

func (k *DefaultKafkaPublisher) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var firstErr error
	for topic, w := range k.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close writer for %s: %w", topic, err)
		}
	}
	k.writers = make(map[string]*kafka.Writer)
	return firstErr
}

func (k *DefaultKafkaPublisher) writer(topic string) *kafka.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if w, ok := k.writers[topic]; ok {
		return w
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(k.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Transport:              k.transport,
	}
	k.writers[topic] = w
	return w
}

func Brokers(cfg config.KafkaService) []string {
	return []string{net.JoinHostPort(cfg.Host, cfg.Port)}
}

// saslMechanism returns nil when no credentials are configured.
func saslMechanism(cfg config.KafkaService) (sasl.Mechanism, error) {
	if cfg.Username == "" {
		return nil, nil
	}
	switch cfg.Mechanism {
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	case "PLAIN", "":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	default:
		return nil, fmt.Errorf("unsupported kafka sasl mechanism %q", cfg.Mechanism)
	}
}
