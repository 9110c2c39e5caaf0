package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
)

func ToDomainSale(model *models.SaleModel) *domain.Sale {
	sale := &domain.Sale{
		ID:                   model.ID,
		OrderID:              model.OrderID,
		Source:               domain.Source(model.Source),
		InfluencerID:         model.InfluencerID,
		SaleValue:            model.SaleValue,
		CouponCodeUsed:       model.CouponCodeUsed,
		CommissionCalculated: model.CommissionCalculated,
		TransactionDate:      model.TransactionDate,
		ProcessedViaWebhook:  model.ProcessedViaWebhook,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
	if model.ManagerID != nil {
		sale.ManagerID = *model.ManagerID
	}
	if model.InfluencerPercentage.Valid {
		sale.InfluencerPercentage = model.InfluencerPercentage.Decimal
	}
	if model.ManagerPercentage.Valid {
		sale.ManagerPercentage = model.ManagerPercentage.Decimal
	}
	if model.InfluencerCommissionEarned.Valid {
		sale.InfluencerCommissionEarned = model.InfluencerCommissionEarned.Decimal
	}
	if model.ManagerCommissionEarned.Valid {
		sale.ManagerCommissionEarned = model.ManagerCommissionEarned.Decimal
	}
	return sale
}

func ToGORMSale(sale *domain.Sale) *models.SaleModel {
	model := &models.SaleModel{
		ID:                   sale.ID,
		OrderID:              sale.OrderID,
		Source:               string(sale.Source),
		InfluencerID:         sale.InfluencerID,
		ManagerID:            optionalString(sale.ManagerID),
		SaleValue:            sale.SaleValue,
		CouponCodeUsed:       sale.CouponCodeUsed,
		CommissionCalculated: sale.CommissionCalculated,
		TransactionDate:      sale.TransactionDate,
		ProcessedViaWebhook:  sale.ProcessedViaWebhook,
		CreatedAt:            sale.CreatedAt,
		UpdatedAt:            sale.UpdatedAt,
	}
	// percentages are only meaningful once calculated
	if sale.CommissionCalculated {
		model.InfluencerPercentage = decimal.NewNullDecimal(sale.InfluencerPercentage)
		model.ManagerPercentage = decimal.NewNullDecimal(sale.ManagerPercentage)
		model.InfluencerCommissionEarned = decimal.NewNullDecimal(sale.InfluencerCommissionEarned)
		model.ManagerCommissionEarned = decimal.NewNullDecimal(sale.ManagerCommissionEarned)
	}
	return model
}

func ToDomainSales(rows []models.SaleModel) []*domain.Sale {
	sales := make([]*domain.Sale, len(rows))
	for i := range rows {
		sales[i] = ToDomainSale(&rows[i])
	}
	return sales
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
