package domain

import "github.com/shopspring/decimal"

// MaxMoneyValue is the largest amount a NUMERIC(14,2) column holds.
var MaxMoneyValue = decimal.RequireFromString("999999999999.99")

// HasCents reports whether d needs no more than two decimal places.
func HasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func FitsMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(MaxMoneyValue) && HasCents(d)
}
