package message

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRenderSale_Default(t *testing.T) {
	out := RenderSale("", SaleData{
		Name:       "Antonio",
		Coupon:     "ANTONIO10",
		OrderID:    "CP-77",
		SaleValue:  decimal.RequireFromString("1000.01"),
		Commission: decimal.RequireFromString("150"),
		Percentage: decimal.RequireFromString("15"),
	})

	assert.Contains(t, out, "Olá Antonio!")
	assert.Contains(t, out, "ANTONIO10")
	assert.Contains(t, out, "R$ 1000.01")
	assert.Contains(t, out, "(15%): R$ 150.00")
	assert.NotContains(t, out, "{")
}

func TestRenderSale_CustomTemplate(t *testing.T) {
	out := RenderSale("{name} vendeu {order_id} e ganhou {commission} ({unknown})", SaleData{
		Name:       "Bia",
		OrderID:    "42",
		Commission: decimal.RequireFromString("9.5"),
	})
	assert.Equal(t, "Bia vendeu 42 e ganhou 9.50 ({unknown})", out)
}

func TestRenderReport(t *testing.T) {
	out := RenderReport("   ", ReportData{
		Name:        "Bia",
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC),
		TotalSales:  decimal.NewFromInt(600),
		Commission:  decimal.NewFromInt(60),
		SalesCount:  3,
	})

	assert.Contains(t, out, "01/05/2024 a 31/05/2024")
	assert.Contains(t, out, "Vendas: 3")
	assert.Contains(t, out, "R$ 600.00")
	assert.Contains(t, out, "R$ 60.00")
}
