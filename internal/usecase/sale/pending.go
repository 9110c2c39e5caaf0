package sale

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/shopspring/decimal"
)

// ProcessPendingCommissions fills in the commission of every sale that was
// stored without one. Tiers are read once per sweep. Sales already
// calculated by a concurrent sweep are skipped, so re-running is a no-op.
func (uc *DefaultSaleUsecase) ProcessPendingCommissions(ctx context.Context) (*saledto.ProcessPendingOutput, error) {
	out := &saledto.ProcessPendingOutput{
		TotalInfluencerCommission: decimal.Zero,
		TotalManagerCommission:    decimal.Zero,
	}

	tiers, err := uc.TierRepo.ListTiers(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("load commission tiers: %w", err)
	}

	batchSize := uc.PendingBatchSize
	if batchSize <= 0 {
		batchSize = defaultPendingBatchSize
	}

	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		batch, err := uc.SaleRepo.FindUncalculatedSales(ctx, batchSize)
		if err != nil {
			return out, fmt.Errorf("find uncalculated sales: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		progressed := 0
		for _, sale := range batch {
			managerPct := decimal.Zero
			if sale.HasManager() {
				managerPct = domain.PercentageFor(tiers, domain.RoleManager, sale.SaleValue)
			}
			sale.ApplyCommission(domain.PercentageFor(tiers, domain.RoleInfluencer, sale.SaleValue), managerPct)

			updated, err := uc.SaleRepo.UpdateSaleCommission(ctx, sale)
			if err != nil {
				return out, fmt.Errorf("update commission of sale %s: %w", sale.ID, err)
			}
			if !updated {
				continue
			}
			progressed++
			out.ProcessedCount++
			out.TotalInfluencerCommission = out.TotalInfluencerCommission.Add(sale.InfluencerCommissionEarned)
			out.TotalManagerCommission = out.TotalManagerCommission.Add(sale.ManagerCommissionEarned)
			if uc.Metrics != nil {
				uc.Metrics.RecordPendingProcessed(sale.InfluencerCommissionEarned, sale.ManagerCommissionEarned)
			}
		}

		if len(batch) < batchSize || progressed == 0 {
			break
		}
	}

	if out.ProcessedCount > 0 {
		slog.Info("pending commissions processed",
			"processed", out.ProcessedCount,
			"influencer_total", out.TotalInfluencerCommission.StringFixed(2),
			"manager_total", out.TotalManagerCommission.StringFixed(2),
		)
	}
	return out, nil
}
