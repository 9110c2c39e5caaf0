package tier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/validate"
)

// ReplaceTiers swaps the whole tier set of a role. Every entry is validated
// before the repository is touched, and the repository applies the
// delete and insert in one transaction.
func (uc *DefaultTierUsecase) ReplaceTiers(ctx context.Context, input *tierdto.ReplaceTiersInput) (*tierdto.ReplaceTiersOutput, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	tiers := make([]*domain.CommissionTier, len(input.Tiers))
	for i, in := range input.Tiers {
		tiers[i] = uc.toDomainTier(role, in)
	}
	if err := domain.ValidateTierSet(tiers); err != nil {
		return nil, err
	}

	if err := uc.tierRepo.ReplaceTiers(ctx, role, tiers); err != nil {
		slog.Error("commission tier replace rolled back", "role", role, "error", err)
		return nil, fmt.Errorf("replace %s tiers: %w", role, err)
	}

	slog.Info("commission tiers replaced", "role", role, "tiers_created", len(tiers))
	return &tierdto.ReplaceTiersOutput{
		Role:         role,
		TiersCreated: len(tiers),
		Tiers:        tiers,
	}, nil
}
