package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommissionPaymentModel struct {
	ID                 string          `gorm:"primaryKey;type:varchar(32)"`
	UserID             string          `gorm:"type:varchar(64);not null;index:idx_payments_user_role"`
	RoleAtPayment      string          `gorm:"type:varchar(16);not null;index:idx_payments_user_role"`
	TotalSalesValue    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CommissionEarned   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentPeriodStart time.Time       `gorm:"not null"`
	PaymentPeriodEnd   time.Time       `gorm:"not null"`
	CalculationDate    time.Time       `gorm:"not null"`
	Status             string          `gorm:"type:varchar(16);not null;index:idx_payments_status"`
	PaymentDate        *time.Time
	TransactionID      *string `gorm:"type:varchar(128)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Sales []CommissionPaymentSaleModel `gorm:"foreignKey:PaymentID;references:ID"`
}

func (CommissionPaymentModel) TableName() string {
	return "commission_payments"
}

// CommissionPaymentSaleModel records that a sale was folded into a payment
// for one role. (sale_id, role) is unique so a sale is batched once per role.
type CommissionPaymentSaleModel struct {
	PaymentID string `gorm:"primaryKey;type:varchar(32)"`
	SaleID    string `gorm:"primaryKey;type:uuid;uniqueIndex:idx_payment_sales_sale_role"`
	Role      string `gorm:"type:varchar(16);not null;uniqueIndex:idx_payment_sales_sale_role"`
}

func (CommissionPaymentSaleModel) TableName() string {
	return "commission_payment_sales"
}
