package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPaymentRepository struct {
	db *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{db: db}
}

func (r *DefaultPaymentRepository) CreatePayments(ctx context.Context, payments []*domain.CommissionPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, payment := range payments {
			model := mappers.ToGORMPayment(payment)
			if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
				return fmt.Errorf("insert payment for %s: %w", payment.UserID, err)
			}
			if len(model.Sales) > 0 {
				if err := tx.Create(&model.Sales).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return domain.ErrSalesAlreadyBatched
					}
					return fmt.Errorf("link sales to payment %s: %w", payment.ID, err)
				}
			}
			payment.CreatedAt = model.CreatedAt
			payment.UpdatedAt = model.UpdatedAt
		}
		return nil
	})
}

func (r *DefaultPaymentRepository) GetPaymentByID(ctx context.Context, paymentID string) (*domain.CommissionPayment, error) {
	var model models.CommissionPaymentModel
	if err := r.db.WithContext(ctx).Preload("Sales").Where("id = ?", paymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.CommissionPayment, error) {
	query := r.db.WithContext(ctx).Model(&models.CommissionPaymentModel{}).Preload("Sales")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Role != "" {
		query = query.Where("role_at_payment = ?", string(filter.Role))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []models.CommissionPaymentModel
	if err := query.Order("payment_period_start DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]*domain.CommissionPayment, len(rows))
	for i := range rows {
		payments[i] = mappers.ToDomainPayment(&rows[i])
	}
	return payments, nil
}

func (r *DefaultPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment *domain.CommissionPayment) error {
	model := mappers.ToGORMPayment(payment)
	result := r.db.WithContext(ctx).Model(&models.CommissionPaymentModel{}).
		Where("id = ? AND status = ?", payment.ID, string(domain.PaymentPending)).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"payment_date":   model.PaymentDate,
			"transaction_id": model.TransactionID,
			"updated_at":     payment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.CommissionPaymentModel{}).Where("id = ?", payment.ID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidStatusTransition
}
