package message

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultSaleTemplate = "Olá {name}! Nova venda com o seu cupom {coupon}.\n" +
		"Pedido: {order_id}\nValor: R$ {sale_value}\nSua comissão ({percentage}%): R$ {commission}"

	DefaultReportTemplate = "Olá {name}! Relatório de comissões de {period_start} a {period_end}.\n" +
		"Vendas: {sales_count}\nTotal vendido: R$ {total_sales}\nComissão a receber: R$ {commission}"

	dateLayout = "02/01/2006"
)

type SaleData struct {
	Name       string
	Coupon     string
	OrderID    string
	SaleValue  decimal.Decimal
	Commission decimal.Decimal
	Percentage decimal.Decimal
}

type ReportData struct {
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalSales  decimal.Decimal
	Commission  decimal.Decimal
	SalesCount  int
}

// RenderSale fills a new-sale template. An empty template uses the default.
func RenderSale(template string, d SaleData) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultSaleTemplate
	}
	return strings.NewReplacer(
		"{name}", d.Name,
		"{coupon}", d.Coupon,
		"{order_id}", d.OrderID,
		"{sale_value}", d.SaleValue.StringFixed(2),
		"{commission}", d.Commission.StringFixed(2),
		"{percentage}", d.Percentage.String(),
	).Replace(template)
}

func RenderReport(template string, d ReportData) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultReportTemplate
	}
	return strings.NewReplacer(
		"{name}", d.Name,
		"{period_start}", d.PeriodStart.Format(dateLayout),
		"{period_end}", d.PeriodEnd.Format(dateLayout),
		"{total_sales}", d.TotalSales.StringFixed(2),
		"{commission}", d.Commission.StringFixed(2),
		"{sales_count}", strconv.Itoa(d.SalesCount),
	).Replace(template)
}
