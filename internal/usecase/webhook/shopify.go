package webhook

import (
	"encoding/json"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

type shopifyMoneySet struct {
	ShopMoney struct {
		Amount flexAmount `json:"amount"`
	} `json:"shop_money"`
}

type shopifyDiscountApplication struct {
	Code string `json:"code"`
}

type shopifyOrder struct {
	ID                   flexString                   `json:"id"`
	OrderNumber          flexString                   `json:"order_number"`
	Name                 flexString                   `json:"name"`
	CurrentTotalPrice    flexAmount                   `json:"current_total_price"`
	TotalPrice           flexAmount                   `json:"total_price"`
	TotalPriceSet        shopifyMoneySet              `json:"total_price_set"`
	DiscountCodes        couponField                  `json:"discount_codes"`
	DiscountApplications []shopifyDiscountApplication `json:"discount_applications"`
	ProcessedAt          flexTime                     `json:"processed_at"`
	CreatedAt            flexTime                     `json:"created_at"`
}

type ShopifyAdapter struct{}

func (ShopifyAdapter) Source() domain.Source {
	return domain.SourceShopify
}

func (ShopifyAdapter) Normalize(raw []byte) (domain.SaleIntake, error) {
	body, err := orderObject(domain.SourceShopify, raw)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	var order shopifyOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return domain.SaleIntake{}, malformed(domain.SourceShopify, err.Error())
	}

	total, ok := firstAmount(order.CurrentTotalPrice, order.TotalPrice, order.TotalPriceSet.ShopMoney.Amount)
	intake, err := buildIntake(domain.SourceShopify, firstString(order.ID, order.OrderNumber, order.Name), total, ok)
	if err != nil {
		return domain.SaleIntake{}, err
	}

	intake.CouponRaw = order.DiscountCodes.first()
	if intake.CouponRaw == "" {
		for _, app := range order.DiscountApplications {
			var field couponField
			field.add(app.Code)
			if code := field.first(); code != "" {
				intake.CouponRaw = code
				break
			}
		}
	}
	intake.OccurredAt = firstTime(order.ProcessedAt, order.CreatedAt)
	return intake, nil
}
