package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleModel struct {
	ID                         string              `gorm:"primaryKey;type:uuid"`
	OrderID                    string              `gorm:"type:varchar(191);not null;uniqueIndex:idx_sales_order_id"`
	Source                     string              `gorm:"type:varchar(32);not null"`
	InfluencerID               string              `gorm:"type:varchar(64);not null;index:idx_sales_influencer"`
	ManagerID                  *string             `gorm:"type:varchar(64);index:idx_sales_manager"`
	SaleValue                  decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CouponCodeUsed             string              `gorm:"type:varchar(128)"`
	CommissionCalculated       bool                `gorm:"not null;default:false;index:idx_sales_calculated"`
	InfluencerPercentage       decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	ManagerPercentage          decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	InfluencerCommissionEarned decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	ManagerCommissionEarned    decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	TransactionDate            time.Time           `gorm:"not null;index:idx_sales_transaction_date"`
	ProcessedViaWebhook        bool                `gorm:"not null;default:false"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

func (SaleModel) TableName() string {
	return "sales"
}
