package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
)

func ToDomainTier(model *models.CommissionTierModel) *domain.CommissionTier {
	tier := &domain.CommissionTier{
		ID:                   model.ID,
		Name:                 model.Name,
		MinSalesValue:        model.MinSalesValue,
		CommissionPercentage: model.CommissionPercentage,
		AppliesTo:            domain.Role(model.AppliesTo),
		IsActive:             model.IsActive,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
	if model.MaxSalesValue.Valid {
		upper := model.MaxSalesValue.Decimal
		tier.MaxSalesValue = &upper
	}
	return tier
}

func ToGORMTier(tier *domain.CommissionTier) *models.CommissionTierModel {
	model := &models.CommissionTierModel{
		ID:                   tier.ID,
		Name:                 tier.Name,
		MinSalesValue:        tier.MinSalesValue,
		CommissionPercentage: tier.CommissionPercentage,
		AppliesTo:            string(tier.AppliesTo),
		IsActive:             tier.IsActive,
		CreatedAt:            tier.CreatedAt,
		UpdatedAt:            tier.UpdatedAt,
	}
	if tier.MaxSalesValue != nil {
		model.MaxSalesValue = decimal.NewNullDecimal(*tier.MaxSalesValue)
	}
	return model
}

func ToDomainTiers(rows []models.CommissionTierModel) []*domain.CommissionTier {
	tiers := make([]*domain.CommissionTier, len(rows))
	for i := range rows {
		tiers[i] = ToDomainTier(&rows[i])
	}
	return tiers
}
