package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultSaleRepository struct {
	db *gorm.DB
}

func NewDefaultSaleRepository(db *gorm.DB) *DefaultSaleRepository {
	return &DefaultSaleRepository{db: db}
}

func (r *DefaultSaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	model := mappers.ToGORMSale(sale)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSaleAlreadyExists
		}
		return err
	}
	sale.CreatedAt = model.CreatedAt
	sale.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultSaleRepository) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.first(ctx, "id = ?", saleID)
}

func (r *DefaultSaleRepository) GetSaleByOrderID(ctx context.Context, orderID string) (*domain.Sale, error) {
	return r.first(ctx, "order_id = ?", orderID)
}

func (r *DefaultSaleRepository) first(ctx context.Context, query string, arg interface{}) (*domain.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSale(&model), nil
}

func (r *DefaultSaleRepository) FindUncalculatedSales(ctx context.Context, limit int) ([]*domain.Sale, error) {
	var rows []models.SaleModel
	query := r.db.WithContext(ctx).
		Where("commission_calculated = ?", false).
		Order("transaction_date ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainSales(rows), nil
}

func (r *DefaultSaleRepository) CountUncalculatedSales(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("commission_calculated = ?", false).
		Where("transaction_date BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *DefaultSaleRepository) UpdateSaleCommission(ctx context.Context, sale *domain.Sale) (bool, error) {
	model := mappers.ToGORMSale(sale)
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("id = ? AND commission_calculated = ?", sale.ID, false).
		Updates(map[string]interface{}{
			"commission_calculated":        true,
			"influencer_percentage":        model.InfluencerPercentage,
			"manager_percentage":           model.ManagerPercentage,
			"influencer_commission_earned": model.InfluencerCommissionEarned,
			"manager_commission_earned":    model.ManagerCommissionEarned,
			"updated_at":                   now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	sale.UpdatedAt = now
	return true, nil
}

func (r *DefaultSaleRepository) FindUnbatchedSales(ctx context.Context, role domain.Role, from, to time.Time) ([]*domain.Sale, error) {
	var rows []models.SaleModel
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("commission_calculated = ?", true).
		Where("transaction_date BETWEEN ? AND ?", from, to).
		Where("NOT EXISTS (SELECT 1 FROM commission_payment_sales ps WHERE ps.sale_id = sales.id AND ps.role = ?)", string(role))
	if role == domain.RoleManager {
		query = query.Where("manager_id IS NOT NULL AND manager_id <> ''")
	}
	if err := query.Order("transaction_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainSales(rows), nil
}
