package tier

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/shopspring/decimal"
)

// ResolveCommission returns the percentage of the highest active bracket of
// role that saleValue reaches, or zero when none applies.
func (uc *DefaultTierUsecase) ResolveCommission(ctx context.Context, role domain.Role, saleValue decimal.Decimal) (decimal.Decimal, error) {
	tiers, err := uc.tierRepo.ListTiers(ctx, role, false)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load %s tiers: %w", role, err)
	}
	return domain.PercentageFor(tiers, role, saleValue), nil
}

func (uc *DefaultTierUsecase) PreviewCommission(ctx context.Context, input *tierdto.PreviewInput) (*tierdto.PreviewOutput, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if input.SaleValue.IsNegative() {
		return nil, domain.NewValidationError("sale_value", "must not be negative")
	}

	tiers, err := uc.tierRepo.ListTiers(ctx, role, false)
	if err != nil {
		return nil, fmt.Errorf("load %s tiers: %w", role, err)
	}

	out := &tierdto.PreviewOutput{
		Role:       role,
		SaleValue:  input.SaleValue,
		Percentage: decimal.Zero,
		Commission: decimal.Zero,
	}
	if selected := domain.SelectTier(tiers, role, input.SaleValue); selected != nil {
		out.Percentage = selected.CommissionPercentage
		out.Commission = domain.CalculateCommission(input.SaleValue, selected.CommissionPercentage)
		out.TierID = selected.ID
		out.TierName = selected.Name
	}
	return out, nil
}
