package models

// UserModel maps the accounts table owned by the user directory. This service
// only reads it.
type UserModel struct {
	ID                    string  `gorm:"primaryKey"`
	Name                  string
	CouponCode            string  `gorm:"column:coupon_code"`
	ManagerID             *string `gorm:"column:manager_id"`
	WhatsApp              string  `gorm:"column:whatsapp"`
	NotificationToken     string  `gorm:"column:notification_token"`
	SaleMessageTemplate   string  `gorm:"column:sale_message_template"`
	ReportMessageTemplate string  `gorm:"column:report_message_template"`
}

func (UserModel) TableName() string {
	return "users"
}
