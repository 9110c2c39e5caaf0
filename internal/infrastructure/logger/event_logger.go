package logger

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"gorm.io/gorm"
)

type WebhookIntakeEvent struct {
	ID          uint `gorm:"primaryKey"`
	Source      string
	OrderID     string
	CouponCode  string
	Outcome     string
	Reason      string
	SaleID      string
	PayloadHash string
	ReceivedAt  time.Time
}

func (WebhookIntakeEvent) TableName() string {
	return "webhook_intake_events"
}

type PGIntakeEventLogger struct {
	db *gorm.DB
}

func NewPGIntakeEventLogger(db *gorm.DB) *PGIntakeEventLogger {
	return &PGIntakeEventLogger{db: db}
}

func (l *PGIntakeEventLogger) LogIntake(ctx context.Context, event *domain.IntakeEvent) error {
	return l.db.WithContext(ctx).Create(&WebhookIntakeEvent{
		Source:      string(event.Source),
		OrderID:     event.OrderID,
		CouponCode:  event.CouponCode,
		Outcome:     string(event.Outcome),
		Reason:      event.Reason,
		SaleID:      event.SaleID,
		PayloadHash: event.PayloadHash,
		ReceivedAt:  event.ReceivedAt,
	}).Error
}
