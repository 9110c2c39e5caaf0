package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

type CommissionPayment struct {
	ID                 string
	UserID             string
	RoleAtPayment      Role
	SaleIDs            []string
	TotalSalesValue    decimal.Decimal
	CommissionEarned   decimal.Decimal
	PaymentPeriodStart time.Time
	PaymentPeriodEnd   time.Time
	CalculationDate    time.Time
	Status             PaymentStatus
	PaymentDate        *time.Time
	TransactionID      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p *CommissionPayment) SalesCount() int {
	return len(p.SaleIDs)
}

// Include folds one sale into the batch.
func (p *CommissionPayment) Include(sale *Sale) {
	p.SaleIDs = append(p.SaleIDs, sale.ID)
	p.TotalSalesValue = p.TotalSalesValue.Add(sale.SaleValue)
	p.CommissionEarned = p.CommissionEarned.Add(sale.CommissionFor(p.RoleAtPayment))
}

// Transition moves a pending payment to paid or failed.
func (p *CommissionPayment) Transition(next PaymentStatus, transactionID string, at time.Time) error {
	if p.Status != PaymentPending {
		return ErrInvalidStatusTransition
	}
	switch next {
	case PaymentPaid:
		transactionID = strings.TrimSpace(transactionID)
		if transactionID == "" {
			return NewValidationError("transaction_id", "required when marking a payment as paid")
		}
		p.Status = PaymentPaid
		p.TransactionID = transactionID
		p.PaymentDate = &at
	case PaymentFailed:
		p.Status = PaymentFailed
	default:
		return ErrInvalidStatusTransition
	}
	p.UpdatedAt = at
	return nil
}

type PaymentFilter struct {
	UserID string
	Role   Role
	Status PaymentStatus
}

type PaymentRepository interface {
	// CreatePayments stores the batches and their sale memberships atomically.
	// A sale already batched for the same role yields ErrSalesAlreadyBatched.
	CreatePayments(ctx context.Context, payments []*CommissionPayment) error
	GetPaymentByID(ctx context.Context, paymentID string) (*CommissionPayment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*CommissionPayment, error)
	// UpdatePaymentStatus writes the new status only if the stored row is still pending.
	UpdatePaymentStatus(ctx context.Context, payment *CommissionPayment) error
}
