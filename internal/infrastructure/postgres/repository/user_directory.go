package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultUserDirectory reads influencer and manager accounts from the shared
// users table.
type DefaultUserDirectory struct {
	db *gorm.DB
}

func NewDefaultUserDirectory(db *gorm.DB) *DefaultUserDirectory {
	return &DefaultUserDirectory{db: db}
}

func (r *DefaultUserDirectory) FindUserByCoupon(ctx context.Context, code string) (*domain.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	return r.first(ctx, "LOWER(coupon_code) = LOWER(?)", code)
}

func (r *DefaultUserDirectory) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}
	return r.first(ctx, "id = ?", id)
}

func (r *DefaultUserDirectory) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainUser(&model), nil
}
