package domain

import "context"

type Role string

const (
	RoleInfluencer Role = "influencer"
	RoleManager    Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleInfluencer || r == RoleManager
}

func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", NewValidationError("role", "must be influencer or manager")
	}
	return role, nil
}

// User is the read-only view of an account owned by the user directory.
type User struct {
	ID                    string
	Name                  string
	CouponCode            string
	ManagerID             string
	WhatsApp              string
	NotificationToken     string
	SaleMessageTemplate   string
	ReportMessageTemplate string
}

func (u *User) HasManager() bool {
	return u != nil && u.ManagerID != ""
}

// UserDirectory lookups return (nil, nil) when no user matches.
type UserDirectory interface {
	FindUserByCoupon(ctx context.Context, code string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
}
