package tier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/validate"
)

func (uc *DefaultTierUsecase) ListTiers(ctx context.Context, input *tierdto.ListTiersInput) ([]*domain.CommissionTier, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return uc.tierRepo.ListTiers(ctx, domain.Role(input.Role), input.IncludeInactive)
}

func (uc *DefaultTierUsecase) GetTier(ctx context.Context, tierID string) (*domain.CommissionTier, error) {
	return uc.tierRepo.GetTierByID(ctx, tierID)
}

func (uc *DefaultTierUsecase) CreateTier(ctx context.Context, input *tierdto.CreateTierInput) (*domain.CommissionTier, error) {
	role, err := domain.ParseRole(input.AppliesTo)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(input.TierInput); err != nil {
		return nil, err
	}

	tier := uc.toDomainTier(role, input.TierInput)
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkAgainstActive(ctx, tier); err != nil {
		return nil, err
	}

	if err := uc.tierRepo.CreateTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("create tier: %w", err)
	}
	slog.Info("commission tier created", "tier_id", tier.ID, "role", role, "name", tier.Name)
	return tier, nil
}

func (uc *DefaultTierUsecase) UpdateTier(ctx context.Context, input *tierdto.UpdateTierInput) (*domain.CommissionTier, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	role, err := domain.ParseRole(input.AppliesTo)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(input.TierInput); err != nil {
		return nil, err
	}

	current, err := uc.tierRepo.GetTierByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	tier := uc.toDomainTier(role, input.TierInput)
	tier.ID = current.ID
	tier.CreatedAt = current.CreatedAt
	if input.IsActive == nil {
		tier.IsActive = current.IsActive
	}
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkAgainstActive(ctx, tier); err != nil {
		return nil, err
	}

	if err := uc.tierRepo.UpdateTier(ctx, tier); err != nil {
		return nil, err
	}
	slog.Info("commission tier updated", "tier_id", tier.ID, "role", role)
	return tier, nil
}

// DeactivateTier is a soft delete; the row stays for audit.
func (uc *DefaultTierUsecase) DeactivateTier(ctx context.Context, tierID string) error {
	if err := uc.tierRepo.DeactivateTier(ctx, tierID); err != nil {
		return err
	}
	slog.Info("commission tier deactivated", "tier_id", tierID)
	return nil
}

// checkAgainstActive rejects a tier whose range overlaps another active tier
// of the same role.
func (uc *DefaultTierUsecase) checkAgainstActive(ctx context.Context, tier *domain.CommissionTier) error {
	existing, err := uc.tierRepo.ListTiers(ctx, tier.AppliesTo, false)
	if err != nil {
		return fmt.Errorf("load %s tiers: %w", tier.AppliesTo, err)
	}
	set := make([]*domain.CommissionTier, 0, len(existing)+1)
	for _, t := range existing {
		if t.ID != tier.ID {
			set = append(set, t)
		}
	}
	return domain.ValidateTierSet(append(set, tier))
}
