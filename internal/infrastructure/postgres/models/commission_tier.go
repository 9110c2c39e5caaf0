package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommissionTierModel struct {
	ID                   string              `gorm:"primaryKey;type:uuid"`
	Name                 string              `gorm:"type:varchar(128);not null"`
	MinSalesValue        decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	MaxSalesValue        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CommissionPercentage decimal.Decimal     `gorm:"type:numeric(5,2);not null"`
	AppliesTo            string              `gorm:"type:varchar(16);not null;index:idx_tiers_role_active"`
	IsActive             bool                `gorm:"not null;default:true;index:idx_tiers_role_active"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (CommissionTierModel) TableName() string {
	return "commission_tiers"
}
