package kafka

import (
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

type PaymentCreatedEvent struct {
	PaymentID        string    `json:"payment_id"`
	UserID           string    `json:"user_id"`
	Role             string    `json:"role"`
	SalesCount       int       `json:"sales_count"`
	TotalSalesValue  string    `json:"total_sales_value"`
	CommissionEarned string    `json:"commission_earned"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	Status           string    `json:"status"`
}

func newPaymentCreatedEvent(payment *domain.CommissionPayment) PaymentCreatedEvent {
	return PaymentCreatedEvent{
		PaymentID:        payment.ID,
		UserID:           payment.UserID,
		Role:             string(payment.RoleAtPayment),
		SalesCount:       payment.SalesCount(),
		TotalSalesValue:  payment.TotalSalesValue.StringFixed(2),
		CommissionEarned: payment.CommissionEarned.StringFixed(2),
		PeriodStart:      payment.PaymentPeriodStart,
		PeriodEnd:        payment.PaymentPeriodEnd,
		Status:           string(payment.Status),
	}
}

// NotificationIntent is handed to the messaging worker when notifications
// are routed through kafka.
type NotificationIntent struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id"`
	Recipient  string `json:"recipient"`
	Message    string `json:"message"`
	Credential string `json:"credential"`
}
