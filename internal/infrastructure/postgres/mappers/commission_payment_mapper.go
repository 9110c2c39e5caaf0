package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.CommissionPaymentModel) *domain.CommissionPayment {
	payment := &domain.CommissionPayment{
		ID:                 model.ID,
		UserID:             model.UserID,
		RoleAtPayment:      domain.Role(model.RoleAtPayment),
		SaleIDs:            make([]string, 0, len(model.Sales)),
		TotalSalesValue:    model.TotalSalesValue,
		CommissionEarned:   model.CommissionEarned,
		PaymentPeriodStart: model.PaymentPeriodStart,
		PaymentPeriodEnd:   model.PaymentPeriodEnd,
		CalculationDate:    model.CalculationDate,
		Status:             domain.PaymentStatus(model.Status),
		PaymentDate:        model.PaymentDate,
		TransactionID:      derefString(model.TransactionID),
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	for _, member := range model.Sales {
		payment.SaleIDs = append(payment.SaleIDs, member.SaleID)
	}
	return payment
}

func ToGORMPayment(payment *domain.CommissionPayment) *models.CommissionPaymentModel {
	model := &models.CommissionPaymentModel{
		ID:                 payment.ID,
		UserID:             payment.UserID,
		RoleAtPayment:      string(payment.RoleAtPayment),
		TotalSalesValue:    payment.TotalSalesValue,
		CommissionEarned:   payment.CommissionEarned,
		PaymentPeriodStart: payment.PaymentPeriodStart,
		PaymentPeriodEnd:   payment.PaymentPeriodEnd,
		CalculationDate:    payment.CalculationDate,
		Status:             string(payment.Status),
		PaymentDate:        payment.PaymentDate,
		TransactionID:      optionalString(payment.TransactionID),
		CreatedAt:          payment.CreatedAt,
		UpdatedAt:          payment.UpdatedAt,
		Sales:              make([]models.CommissionPaymentSaleModel, len(payment.SaleIDs)),
	}
	for i, saleID := range payment.SaleIDs {
		model.Sales[i] = models.CommissionPaymentSaleModel{
			PaymentID: payment.ID,
			SaleID:    saleID,
			Role:      string(payment.RoleAtPayment),
		}
	}
	return model
}
