package saledto

import (
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

type IngestSaleInput struct {
	Source  domain.Source
	Payload []byte
}

type IngestSaleOutput struct {
	Status               domain.IntakeOutcome
	SaleID               string
	OrderID              string
	Reason               string
	InfluencerID         string
	ManagerID            string
	SaleValue            decimal.Decimal
	InfluencerPercentage decimal.Decimal
	ManagerPercentage    decimal.Decimal
	InfluencerCommission decimal.Decimal
	ManagerCommission    decimal.Decimal
}

type ProcessPendingOutput struct {
	ProcessedCount            int
	TotalInfluencerCommission decimal.Decimal
	TotalManagerCommission    decimal.Decimal
}
