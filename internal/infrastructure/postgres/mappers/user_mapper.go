package mappers

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:                    model.ID,
		Name:                  model.Name,
		CouponCode:            model.CouponCode,
		ManagerID:             derefString(model.ManagerID),
		WhatsApp:              model.WhatsApp,
		NotificationToken:     model.NotificationToken,
		SaleMessageTemplate:   model.SaleMessageTemplate,
		ReportMessageTemplate: model.ReportMessageTemplate,
	}
}
