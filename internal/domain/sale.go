package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID                         string
	OrderID                    string
	Source                     Source
	InfluencerID               string
	ManagerID                  string
	SaleValue                  decimal.Decimal
	CouponCodeUsed             string
	CommissionCalculated       bool
	InfluencerPercentage       decimal.Decimal
	ManagerPercentage          decimal.Decimal
	InfluencerCommissionEarned decimal.Decimal
	ManagerCommissionEarned    decimal.Decimal
	TransactionDate            time.Time
	ProcessedViaWebhook        bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

func (s *Sale) HasManager() bool {
	return s.ManagerID != ""
}

// ApplyCommission snapshots the percentages and earned amounts into the sale.
// The manager side stays zero when the sale has no manager.
func (s *Sale) ApplyCommission(influencerPct, managerPct decimal.Decimal) {
	s.InfluencerPercentage = influencerPct
	s.InfluencerCommissionEarned = CalculateCommission(s.SaleValue, influencerPct)
	if s.HasManager() {
		s.ManagerPercentage = managerPct
		s.ManagerCommissionEarned = CalculateCommission(s.SaleValue, managerPct)
	} else {
		s.ManagerPercentage = decimal.Zero
		s.ManagerCommissionEarned = decimal.Zero
	}
	s.CommissionCalculated = true
}

// PayeeFor returns the user credited for the sale under role.
func (s *Sale) PayeeFor(role Role) string {
	if role == RoleManager {
		return s.ManagerID
	}
	return s.InfluencerID
}

func (s *Sale) CommissionFor(role Role) decimal.Decimal {
	if role == RoleManager {
		return s.ManagerCommissionEarned
	}
	return s.InfluencerCommissionEarned
}

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *Sale) error
	GetSaleByID(ctx context.Context, saleID string) (*Sale, error)
	GetSaleByOrderID(ctx context.Context, orderID string) (*Sale, error)
	FindUncalculatedSales(ctx context.Context, limit int) ([]*Sale, error)
	CountUncalculatedSales(ctx context.Context, from, to time.Time) (int64, error)
	// UpdateSaleCommission persists the commission snapshot only while the
	// sale is still uncalculated; it reports whether a row was written.
	UpdateSaleCommission(ctx context.Context, sale *Sale) (bool, error)
	// FindUnbatchedSales returns calculated sales in [from, to] that are not yet
	// part of a payment for role.
	FindUnbatchedSales(ctx context.Context, role Role, from, to time.Time) ([]*Sale, error)
}
