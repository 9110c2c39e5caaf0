package sale

import (
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func (uc *DefaultSaleUsecase) recordIntakeMetrics(source, outcome string, started time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordIntake(source, outcome, uc.now().Sub(started).Seconds())
}

func (uc *DefaultSaleUsecase) recordSaleMetrics(sale *domain.Sale) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordSale(string(sale.Source), sale.SaleValue, sale.InfluencerCommissionEarned, sale.ManagerCommissionEarned)
}
