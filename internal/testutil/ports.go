package testutil

import (
	"context"
	"sync"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

type Messenger struct {
	mu   sync.Mutex
	Sent []domain.Notification
	Err  error
}

func (m *Messenger) SendNotification(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, n)
	return m.Err
}

func (m *Messenger) Notifications() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.Sent...)
}

type EventPublisher struct {
	mu       sync.Mutex
	Sales    []*domain.Sale
	Payments []*domain.CommissionPayment
	Err      error
}

func (p *EventPublisher) PublishSaleRecorded(_ context.Context, sale *domain.Sale) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sales = append(p.Sales, sale)
	return p.Err
}

func (p *EventPublisher) PublishPaymentCreated(_ context.Context, payment *domain.CommissionPayment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Payments = append(p.Payments, payment)
	return p.Err
}

type IntakeLog struct {
	mu     sync.Mutex
	Events []*domain.IntakeEvent
	Err    error
}

func (l *IntakeLog) LogIntake(_ context.Context, event *domain.IntakeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Events = append(l.Events, event)
	return l.Err
}

func (l *IntakeLog) Outcomes() []domain.IntakeOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.IntakeOutcome, len(l.Events))
	for i, e := range l.Events {
		out[i] = e.Outcome
	}
	return out
}
