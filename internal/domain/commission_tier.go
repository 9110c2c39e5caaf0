package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type CommissionTier struct {
	ID                   string
	Name                 string
	MinSalesValue        decimal.Decimal
	MaxSalesValue        *decimal.Decimal
	CommissionPercentage decimal.Decimal
	AppliesTo            Role
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (t *CommissionTier) Validate() error {
	if !t.AppliesTo.Valid() {
		return NewValidationError("applies_to", "must be influencer or manager")
	}
	if t.MinSalesValue.IsNegative() {
		return NewValidationError("min_sales_value", "must not be negative")
	}
	if !FitsMoney(t.MinSalesValue) {
		return NewValidationError("min_sales_value", "must have at most two decimals and not exceed 999999999999.99")
	}
	if t.CommissionPercentage.IsNegative() || t.CommissionPercentage.GreaterThan(hundred) {
		return NewValidationError("commission_percentage", "must be between 0 and 100")
	}
	if !HasCents(t.CommissionPercentage) {
		return NewValidationError("commission_percentage", "must have at most two decimals")
	}
	if t.MaxSalesValue != nil {
		if !t.MaxSalesValue.GreaterThan(t.MinSalesValue) {
			return NewValidationError("max_sales_value", "must be greater than min_sales_value")
		}
		if !FitsMoney(*t.MaxSalesValue) {
			return NewValidationError("max_sales_value", "must have at most two decimals and not exceed 999999999999.99")
		}
	}
	return nil
}

// RangeName renders the bracket as "min - max" or "min+" for open tiers.
func (t *CommissionTier) RangeName() string {
	if t.MaxSalesValue == nil {
		return fmt.Sprintf("%s+", t.MinSalesValue.StringFixed(2))
	}
	return fmt.Sprintf("%s - %s", t.MinSalesValue.StringFixed(2), t.MaxSalesValue.StringFixed(2))
}

// SelectTier picks, among active tiers of role whose minimum does not exceed
// value, the one with the largest minimum. It returns nil when none qualifies.
func SelectTier(tiers []*CommissionTier, role Role, value decimal.Decimal) *CommissionTier {
	var best *CommissionTier
	for _, tier := range tiers {
		if tier == nil || !tier.IsActive || tier.AppliesTo != role {
			continue
		}
		if tier.MinSalesValue.GreaterThan(value) {
			continue
		}
		if best == nil || tier.MinSalesValue.GreaterThan(best.MinSalesValue) {
			best = tier
		}
	}
	return best
}

// PercentageFor returns the percentage of the selected tier, or zero.
func PercentageFor(tiers []*CommissionTier, role Role, value decimal.Decimal) decimal.Decimal {
	tier := SelectTier(tiers, role, value)
	if tier == nil {
		return decimal.Zero
	}
	return tier.CommissionPercentage
}

func CalculateCommission(value, percentage decimal.Decimal) decimal.Decimal {
	if value.IsZero() || percentage.IsZero() {
		return decimal.Zero
	}
	return value.Mul(percentage).Div(hundred).Round(2)
}

// ValidateTierSet validates each tier and rejects overlapping active brackets.
// Upper bounds are exclusive, so a tier may start exactly where the previous one ends.
func ValidateTierSet(tiers []*CommissionTier) error {
	for i, tier := range tiers {
		if err := tier.Validate(); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				ve.Field = fmt.Sprintf("tiers[%d].%s", i, ve.Field)
			}
			return err
		}
	}

	return checkOverlap(tiers)
}

// checkOverlap compares active tiers per role.
func checkOverlap(tiers []*CommissionTier) error {
	sorted := make([]*CommissionTier, 0, len(tiers))
	for _, tier := range tiers {
		if tier.IsActive {
			sorted = append(sorted, tier)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AppliesTo != sorted[j].AppliesTo {
			return sorted[i].AppliesTo < sorted[j].AppliesTo
		}
		return sorted[i].MinSalesValue.LessThan(sorted[j].MinSalesValue)
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.AppliesTo != cur.AppliesTo {
			continue
		}
		if prev.MaxSalesValue == nil || prev.MaxSalesValue.GreaterThan(cur.MinSalesValue) {
			return NewValidationError("tiers", fmt.Sprintf("range %s overlaps %s", prev.RangeName(), cur.RangeName()))
		}
	}
	return nil
}

type TierRepository interface {
	ListTiers(ctx context.Context, role Role, includeInactive bool) ([]*CommissionTier, error)
	GetTierByID(ctx context.Context, tierID string) (*CommissionTier, error)
	CreateTier(ctx context.Context, tier *CommissionTier) error
	UpdateTier(ctx context.Context, tier *CommissionTier) error
	DeactivateTier(ctx context.Context, tierID string) error
	// ReplaceTiers deletes every tier of role and inserts tiers in one transaction.
	ReplaceTiers(ctx context.Context, role Role, tiers []*CommissionTier) error
}
