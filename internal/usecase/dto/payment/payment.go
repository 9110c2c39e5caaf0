package paymentdto

import (
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

type GeneratePaymentsInput struct {
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
}

type RoleTotals struct {
	Payments         int
	TotalSalesValue  decimal.Decimal
	CommissionEarned decimal.Decimal
}

type GeneratePaymentsOutput struct {
	PaymentsCreated  int
	PendingProcessed int
	TotalsByRole     map[domain.Role]*RoleTotals
	Payments         []*domain.CommissionPayment
}

type UpdatePaymentStatusInput struct {
	PaymentID     string `json:"payment_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=paid failed"`
	TransactionID string `json:"transaction_id" validate:"required_if=Status paid"`
}

type ListPaymentsInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role" validate:"omitempty,oneof=influencer manager"`
	Status string `json:"status" validate:"omitempty,oneof=pending paid failed"`
}
