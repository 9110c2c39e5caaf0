package webhook

import (
	"encoding/json"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

type cartPandaOrder struct {
	ID            flexString  `json:"id"`
	OrderID       flexString  `json:"order_id"`
	Number        flexString  `json:"number"`
	TotalPrice    flexAmount  `json:"total_price"`
	Total         flexAmount  `json:"total"`
	Amount        flexAmount  `json:"amount"`
	Price         flexAmount  `json:"price"`
	DiscountCodes couponField `json:"discount_codes"`
	Coupon        couponField `json:"coupon"`
	CouponCode    couponField `json:"coupon_code"`
	PaidAt        flexTime    `json:"paid_at"`
	CreatedAt     flexTime    `json:"created_at"`
	UpdatedAt     flexTime    `json:"updated_at"`
}

type CartPandaAdapter struct{}

func (CartPandaAdapter) Source() domain.Source {
	return domain.SourceCartPanda
}

func (CartPandaAdapter) Normalize(raw []byte) (domain.SaleIntake, error) {
	body, err := orderObject(domain.SourceCartPanda, raw)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	var order cartPandaOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return domain.SaleIntake{}, malformed(domain.SourceCartPanda, err.Error())
	}

	total, ok := firstAmount(order.TotalPrice, order.Total, order.Amount, order.Price)
	intake, err := buildIntake(domain.SourceCartPanda, firstString(order.ID, order.OrderID, order.Number), total, ok)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	intake.CouponRaw = firstCoupon(order.DiscountCodes, order.Coupon, order.CouponCode)
	intake.OccurredAt = firstTime(order.PaidAt, order.CreatedAt, order.UpdatedAt)
	return intake, nil
}
