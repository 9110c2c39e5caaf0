package tier

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/shopspring/decimal"
)

type TierUsecase interface {
	ResolveCommission(ctx context.Context, role domain.Role, saleValue decimal.Decimal) (decimal.Decimal, error)
	PreviewCommission(ctx context.Context, input *tierdto.PreviewInput) (*tierdto.PreviewOutput, error)
	ListTiers(ctx context.Context, input *tierdto.ListTiersInput) ([]*domain.CommissionTier, error)
	GetTier(ctx context.Context, tierID string) (*domain.CommissionTier, error)
	CreateTier(ctx context.Context, input *tierdto.CreateTierInput) (*domain.CommissionTier, error)
	UpdateTier(ctx context.Context, input *tierdto.UpdateTierInput) (*domain.CommissionTier, error)
	DeactivateTier(ctx context.Context, tierID string) error
	ReplaceTiers(ctx context.Context, input *tierdto.ReplaceTiersInput) (*tierdto.ReplaceTiersOutput, error)
}

type DefaultTierUsecase struct {
	tierRepo domain.TierRepository
	now      func() time.Time
}

func NewDefaultTierUsecase(tierRepo domain.TierRepository) *DefaultTierUsecase {
	return &DefaultTierUsecase{
		tierRepo: tierRepo,
		now:      time.Now,
	}
}

// toDomainTier builds a tier from validated input. Missing names are generated
// from the range and missing activity flags default to active.
func (uc *DefaultTierUsecase) toDomainTier(role domain.Role, in tierdto.TierInput) *domain.CommissionTier {
	now := uc.now()
	tier := &domain.CommissionTier{
		Name:                 in.Name,
		MinSalesValue:        *in.MinSalesValue,
		MaxSalesValue:        in.MaxSalesValue,
		CommissionPercentage: *in.CommissionPercentage,
		AppliesTo:            role,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.IsActive != nil {
		tier.IsActive = *in.IsActive
	}
	if tier.Name == "" {
		tier.Name = tier.RangeName()
	}
	return tier
}
