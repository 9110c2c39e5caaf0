package webhook

import (
	"encoding/json"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// genericOrder is the documented format for platforms without a dedicated
// adapter. The shared secret is checked by the delivery layer.
type genericOrder struct {
	OrderID         flexString  `json:"order_id"`
	OrderIDCamel    flexString  `json:"orderId"`
	ID              flexString  `json:"id"`
	TotalValue      flexAmount  `json:"total_value"`
	TotalValueCamel flexAmount  `json:"totalValue"`
	Total           flexAmount  `json:"total"`
	Amount          flexAmount  `json:"amount"`
	CouponCode      couponField `json:"coupon_code"`
	CouponCodeCamel couponField `json:"couponCode"`
	Coupon          couponField `json:"coupon"`
	OccurredAt      flexTime    `json:"occurred_at"`
	OccurredAtCamel flexTime    `json:"occurredAt"`
	CreatedAt       flexTime    `json:"created_at"`
}

type GenericAdapter struct{}

func (GenericAdapter) Source() domain.Source {
	return domain.SourceGeneric
}

func (GenericAdapter) Normalize(raw []byte) (domain.SaleIntake, error) {
	body, err := orderObject(domain.SourceGeneric, raw)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	var order genericOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return domain.SaleIntake{}, malformed(domain.SourceGeneric, err.Error())
	}

	total, ok := firstAmount(order.TotalValue, order.TotalValueCamel, order.Total, order.Amount)
	intake, err := buildIntake(domain.SourceGeneric, firstString(order.OrderID, order.OrderIDCamel, order.ID), total, ok)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	intake.CouponRaw = firstCoupon(order.CouponCode, order.CouponCodeCamel, order.Coupon)
	intake.OccurredAt = firstTime(order.OccurredAt, order.OccurredAtCamel, order.CreatedAt)
	return intake, nil
}
