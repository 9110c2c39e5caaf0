package setup

import (
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

type UseCases struct {
	TierUsecase    *tier.DefaultTierUsecase
	SaleUsecase    *sale.DefaultSaleUsecase
	PaymentUsecase *payment.DefaultPaymentUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	repos := deps.Repositories

	tierUsecase := tier.NewDefaultTierUsecase(repos.TierRepo)
	saleUsecase := sale.NewDefaultSaleUsecase(
		repos.SaleRepo,
		repos.TierRepo,
		repos.Users,
		webhook.NewDefaultNormalizer(),
		deps.Messenger,
		deps.Events,
		repos.IntakeLog,
		deps.Metrics,
	)
	paymentUsecase := payment.NewDefaultPaymentUsecase(
		repos.PaymentRepo,
		repos.SaleRepo,
		repos.Users,
		saleUsecase,
		deps.Locker,
		deps.Messenger,
		deps.Events,
		deps.Metrics,
	)
	paymentUsecase.LockTTL = deps.Config.Redis.LockTTL

	return &UseCases{
		TierUsecase:    tierUsecase,
		SaleUsecase:    saleUsecase,
		PaymentUsecase: paymentUsecase,
	}
}

// Wait blocks until in-flight event publishes finish.
func (u *UseCases) Wait() {
	u.SaleUsecase.Wait()
	u.PaymentUsecase.Wait()
}
