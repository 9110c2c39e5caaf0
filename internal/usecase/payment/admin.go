package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/validate"
)

// UpdatePaymentStatus settles a pending payment as paid or failed.
func (uc *DefaultPaymentUsecase) UpdatePaymentStatus(ctx context.Context, input *paymentdto.UpdatePaymentStatusInput) (*domain.CommissionPayment, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	payment, err := uc.PaymentRepo.GetPaymentByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Transition(domain.PaymentStatus(input.Status), input.TransactionID, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.PaymentRepo.UpdatePaymentStatus(ctx, payment); err != nil {
		return nil, err
	}

	slog.Info("payment status updated",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"status", payment.Status,
		"transaction_id", payment.TransactionID,
	)
	return payment, nil
}

func (uc *DefaultPaymentUsecase) GetPayment(ctx context.Context, paymentID string) (*domain.CommissionPayment, error) {
	if paymentID == "" {
		return nil, domain.NewValidationError("payment_id", "is required")
	}
	return uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
}

func (uc *DefaultPaymentUsecase) ListPayments(ctx context.Context, input *paymentdto.ListPaymentsInput) ([]*domain.CommissionPayment, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	payments, err := uc.PaymentRepo.ListPayments(ctx, domain.PaymentFilter{
		UserID: input.UserID,
		Role:   domain.Role(input.Role),
		Status: domain.PaymentStatus(input.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
