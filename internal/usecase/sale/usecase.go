package sale

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

const defaultPendingBatchSize = 500

type SaleUsecase interface {
	IngestSale(ctx context.Context, input *saledto.IngestSaleInput) (*saledto.IngestSaleOutput, error)
	ProcessPendingCommissions(ctx context.Context) (*saledto.ProcessPendingOutput, error)
}

type DefaultSaleUsecase struct {
	SaleRepo   domain.SaleRepository
	TierRepo   domain.TierRepository
	Resolver   *CouponResolver
	Normalizer *webhook.Normalizer
	Messenger  domain.Messenger
	Events     domain.EventPublisher
	IntakeLog  domain.IntakeEventLogger
	Metrics    *metrics.CommissionMetrics

	PendingBatchSize int
	now              func() time.Time
	inflight         sync.WaitGroup
}

func NewDefaultSaleUsecase(
	saleRepo domain.SaleRepository,
	tierRepo domain.TierRepository,
	users domain.UserDirectory,
	normalizer *webhook.Normalizer,
	messenger domain.Messenger,
	events domain.EventPublisher,
	intakeLog domain.IntakeEventLogger,
	commissionMetrics *metrics.CommissionMetrics,
) *DefaultSaleUsecase {
	return &DefaultSaleUsecase{
		SaleRepo:         saleRepo,
		TierRepo:         tierRepo,
		Resolver:         NewCouponResolver(users),
		Normalizer:       normalizer,
		Messenger:        messenger,
		Events:           events,
		IntakeLog:        intakeLog,
		Metrics:          commissionMetrics,
		PendingBatchSize: defaultPendingBatchSize,
		now:              time.Now,
	}
}

// Wait blocks until background event publishes have finished.
func (uc *DefaultSaleUsecase) Wait() {
	uc.inflight.Wait()
}
