package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultTierRepository struct {
	db *gorm.DB
}

func NewDefaultTierRepository(db *gorm.DB) *DefaultTierRepository {
	return &DefaultTierRepository{db: db}
}

// ListTiers returns tiers ordered by lower bound. An empty role lists every role.
func (r *DefaultTierRepository) ListTiers(ctx context.Context, role domain.Role, includeInactive bool) ([]*domain.CommissionTier, error) {
	var rows []models.CommissionTierModel
	query := r.db.WithContext(ctx).Model(&models.CommissionTierModel{})
	if role != "" {
		query = query.Where("applies_to = ?", string(role))
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("applies_to ASC").Order("min_sales_value ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainTiers(rows), nil
}

func (r *DefaultTierRepository) GetTierByID(ctx context.Context, tierID string) (*domain.CommissionTier, error) {
	var model models.CommissionTierModel
	if err := r.db.WithContext(ctx).Where("id = ?", tierID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTier(&model), nil
}

func (r *DefaultTierRepository) CreateTier(ctx context.Context, tier *domain.CommissionTier) error {
	if tier.ID == "" {
		tier.ID = uuid.NewString()
	}
	model := mappers.ToGORMTier(tier)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	tier.CreatedAt = model.CreatedAt
	tier.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultTierRepository) UpdateTier(ctx context.Context, tier *domain.CommissionTier) error {
	model := mappers.ToGORMTier(tier)
	model.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&models.CommissionTierModel{}).
		Where("id = ?", tier.ID).
		Select("name", "min_sales_value", "max_sales_value", "commission_percentage", "applies_to", "is_active", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	tier.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultTierRepository) DeactivateTier(ctx context.Context, tierID string) error {
	result := r.db.WithContext(ctx).Model(&models.CommissionTierModel{}).
		Where("id = ?", tierID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultTierRepository) ReplaceTiers(ctx context.Context, role domain.Role, tiers []*domain.CommissionTier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("applies_to = ?", string(role)).Delete(&models.CommissionTierModel{}).Error; err != nil {
			return fmt.Errorf("delete %s tiers: %w", role, err)
		}
		if len(tiers) == 0 {
			return nil
		}

		batch := make([]*models.CommissionTierModel, len(tiers))
		for i, tier := range tiers {
			if tier.ID == "" {
				tier.ID = uuid.NewString()
			}
			batch[i] = mappers.ToGORMTier(tier)
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("insert %s tiers: %w", role, err)
		}
		for i, model := range batch {
			tiers[i].CreatedAt = model.CreatedAt
			tiers[i].UpdatedAt = model.UpdatedAt
		}
		return nil
	})
}
