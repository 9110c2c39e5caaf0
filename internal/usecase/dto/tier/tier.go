package tierdto

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// TierInput is one tier as submitted by an administrator. Numeric fields are
// pointers so a missing value is distinguishable from zero.
type TierInput struct {
	Name                 string           `json:"name" validate:"omitempty,max=128"`
	MinSalesValue        *decimal.Decimal `json:"min_sales_value" validate:"required"`
	MaxSalesValue        *decimal.Decimal `json:"max_sales_value"`
	CommissionPercentage *decimal.Decimal `json:"commission_percentage" validate:"required"`
	IsActive             *bool            `json:"is_active"`
}

type ReplaceTiersInput struct {
	Role  string      `json:"role" validate:"required,oneof=influencer manager"`
	Tiers []TierInput `json:"tiers" validate:"dive"`
}

type ReplaceTiersOutput struct {
	Role         domain.Role
	TiersCreated int
	Tiers        []*domain.CommissionTier
}

type CreateTierInput struct {
	AppliesTo string `json:"applies_to"`
	TierInput
}

type UpdateTierInput struct {
	ID        string `json:"-"`
	AppliesTo string `json:"applies_to"`
	TierInput
}

type ListTiersInput struct {
	Role            string `json:"role" validate:"omitempty,oneof=influencer manager"`
	IncludeInactive bool   `json:"include_inactive"`
}

type PreviewInput struct {
	Role      string          `json:"role" validate:"required,oneof=influencer manager"`
	SaleValue decimal.Decimal `json:"sale_value"`
}

type PreviewOutput struct {
	Role       domain.Role
	SaleValue  decimal.Decimal
	Percentage decimal.Decimal
	Commission decimal.Decimal
	TierID     string
	TierName   string
}
