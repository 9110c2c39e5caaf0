package sale

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// Attribution is the influencer credited for a coupon and the manager they
// report to at resolution time.
type Attribution struct {
	Influencer *domain.User
	ManagerID  string
	// Manager is nil when the influencer has no manager or the directory no
	// longer knows them; ManagerID is still captured on the sale.
	Manager *domain.User
}

type CouponResolver struct {
	users domain.UserDirectory
}

func NewCouponResolver(users domain.UserDirectory) *CouponResolver {
	return &CouponResolver{users: users}
}

// Resolve returns (nil, nil) when no influencer owns the coupon. The manager
// is looked up on every call so each sale captures the current assignment.
func (r *CouponResolver) Resolve(ctx context.Context, coupon string) (*Attribution, error) {
	coupon = strings.TrimSpace(coupon)
	if coupon == "" {
		return nil, nil
	}

	influencer, err := r.users.FindUserByCoupon(ctx, coupon)
	if err != nil {
		return nil, fmt.Errorf("find user by coupon: %w", err)
	}
	if influencer == nil {
		return nil, nil
	}

	attribution := &Attribution{Influencer: influencer}
	if !influencer.HasManager() {
		return attribution, nil
	}
	attribution.ManagerID = influencer.ManagerID

	manager, err := r.users.FindUserByID(ctx, influencer.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("find manager %s: %w", influencer.ManagerID, err)
	}
	if manager == nil {
		slog.Warn("influencer manager missing from directory",
			"user_id", influencer.ID,
			"manager_id", influencer.ManagerID,
		)
	}
	attribution.Manager = manager
	return attribution, nil
}
