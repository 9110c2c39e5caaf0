package kafka

import (
	"context"
	"encoding/json"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// NotificationPublisher hands notifications to the messaging worker through
// a topic instead of calling the gateway directly.
type NotificationPublisher struct {
	publisher domain.PublisherPort
	topic     string
}

func NewNotificationPublisher(publisher domain.PublisherPort, topic string) *NotificationPublisher {
	return &NotificationPublisher{publisher: publisher, topic: topic}
}

func (p *NotificationPublisher) SendNotification(ctx context.Context, n domain.Notification) error {
	v, err := json.Marshal(NotificationIntent{
		Kind:       string(n.Kind),
		UserID:     n.UserID,
		Recipient:  n.Recipient,
		Message:    n.Message,
		Credential: n.Credential,
	})
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, p.topic, domain.Message{Key: []byte(n.UserID), Value: v})
}
