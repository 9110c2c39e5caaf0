package kafka

import (
	"context"
	"encoding/json"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// CommissionEventPublisher serialises domain events onto the configured topics.
type CommissionEventPublisher struct {
	publisher    domain.PublisherPort
	saleTopic    string
	paymentTopic string
}

func NewCommissionEventPublisher(publisher domain.PublisherPort, saleTopic, paymentTopic string) *CommissionEventPublisher {
	return &CommissionEventPublisher{
		publisher:    publisher,
		saleTopic:    saleTopic,
		paymentTopic: paymentTopic,
	}
}

func (p *CommissionEventPublisher) PublishSaleRecorded(ctx context.Context, sale *domain.Sale) error {
	v, err := json.Marshal(newSaleRecordedEvent(sale))
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, p.saleTopic, domain.Message{Key: []byte(sale.InfluencerID), Value: v})
}

func (p *CommissionEventPublisher) PublishPaymentCreated(ctx context.Context, payment *domain.CommissionPayment) error {
	v, err := json.Marshal(newPaymentCreatedEvent(payment))
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, p.paymentTopic, domain.Message{Key: []byte(payment.UserID), Value: v})
}
