package payment

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	paymentdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payment"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
)

const (
	generationLockKey = "commission:payments:generate"
	generationLockTTL = 5 * time.Minute
	paymentIDLength   = 15
)

type PaymentUsecase interface {
	GenerateCommissionPayments(ctx context.Context, input *paymentdto.GeneratePaymentsInput) (*paymentdto.GeneratePaymentsOutput, error)
	UpdatePaymentStatus(ctx context.Context, input *paymentdto.UpdatePaymentStatusInput) (*domain.CommissionPayment, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.CommissionPayment, error)
	ListPayments(ctx context.Context, input *paymentdto.ListPaymentsInput) ([]*domain.CommissionPayment, error)
}

// PendingProcessor backfills commissions before a period is aggregated.
type PendingProcessor interface {
	ProcessPendingCommissions(ctx context.Context) (*saledto.ProcessPendingOutput, error)
}

type DefaultPaymentUsecase struct {
	PaymentRepo domain.PaymentRepository
	SaleRepo    domain.SaleRepository
	Users       domain.UserDirectory
	Pending     PendingProcessor
	Locker      domain.Locker
	Messenger   domain.Messenger
	Events      domain.EventPublisher
	Metrics     *metrics.CommissionMetrics
	LockTTL     time.Duration

	now      func() time.Time
	inflight sync.WaitGroup
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	saleRepo domain.SaleRepository,
	users domain.UserDirectory,
	pending PendingProcessor,
	locker domain.Locker,
	messenger domain.Messenger,
	events domain.EventPublisher,
	commissionMetrics *metrics.CommissionMetrics,
) *DefaultPaymentUsecase {
	return &DefaultPaymentUsecase{
		PaymentRepo: paymentRepo,
		SaleRepo:    saleRepo,
		Users:       users,
		Pending:     pending,
		Locker:      locker,
		Messenger:   messenger,
		Events:      events,
		Metrics:     commissionMetrics,
		LockTTL:     generationLockTTL,
		now:         time.Now,
	}
}

// Wait blocks until background event publishes have finished.
func (uc *DefaultPaymentUsecase) Wait() {
	uc.inflight.Wait()
}
