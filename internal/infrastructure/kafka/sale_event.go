package kafka

import (
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

type SaleRecordedEvent struct {
	SaleID          string    `json:"sale_id"`
	OrderID         string    `json:"order_id"`
	Source          string    `json:"source"`
	InfluencerID    string    `json:"influencer_id"`
	ManagerID       string    `json:"manager_id,omitempty"`
	SaleValue       string    `json:"sale_value"`
	CouponCode      string    `json:"coupon_code"`
	InfluencerEarn  string    `json:"influencer_commission"`
	ManagerEarn     string    `json:"manager_commission"`
	TransactionDate time.Time `json:"transaction_date"`
}

func newSaleRecordedEvent(sale *domain.Sale) SaleRecordedEvent {
	return SaleRecordedEvent{
		SaleID:          sale.ID,
		OrderID:         sale.OrderID,
		Source:          string(sale.Source),
		InfluencerID:    sale.InfluencerID,
		ManagerID:       sale.ManagerID,
		SaleValue:       sale.SaleValue.StringFixed(2),
		CouponCode:      sale.CouponCodeUsed,
		InfluencerEarn:  sale.InfluencerCommissionEarned.StringFixed(2),
		ManagerEarn:     sale.ManagerCommissionEarned.StringFixed(2),
		TransactionDate: sale.TransactionDate,
	}
}
