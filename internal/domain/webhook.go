package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceCartPanda Source = "cartpanda"
	SourceShopify   Source = "shopify"
	SourceGeneric   Source = "generic"
)

// SaleIntake is the canonical tuple every webhook adapter produces.
// OccurredAt is zero when the platform did not send a timestamp.
type SaleIntake struct {
	Source      Source
	OrderID     string
	TotalValue  decimal.Decimal
	CouponRaw   string
	OccurredAt  time.Time
	PayloadHash string
}

type IntakeOutcome string

const (
	IntakeCreated          IntakeOutcome = "created"
	IntakeAlreadyProcessed IntakeOutcome = "already_processed"
	IntakeNotAttributed    IntakeOutcome = "not_attributed"
	IntakeMalformed        IntakeOutcome = "malformed"
)

// IntakeEvent is the audit record of one webhook delivery.
type IntakeEvent struct {
	Source      Source
	OrderID     string
	CouponCode  string
	Outcome     IntakeOutcome
	Reason      string
	SaleID      string
	PayloadHash string
	ReceivedAt  time.Time
}

type IntakeEventLogger interface {
	LogIntake(ctx context.Context, event *IntakeEvent) error
}
