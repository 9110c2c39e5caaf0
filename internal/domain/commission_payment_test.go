package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func TestCommissionPaymentInclude(t *testing.T) {
	payment := &domain.CommissionPayment{UserID: "inf-1", RoleAtPayment: domain.RoleInfluencer}
	for i, v := range []string{"100", "200", "300"} {
		payment.Include(&domain.Sale{
			ID:                         string(rune('a' + i)),
			SaleValue:                  dec(v),
			InfluencerCommissionEarned: dec(v).Div(decimal.NewFromInt(10)),
			ManagerCommissionEarned:    dec("1"),
		})
	}

	assert.Equal(t, 3, payment.SalesCount())
	assert.True(t, payment.TotalSalesValue.Equal(dec("600")))
	assert.True(t, payment.CommissionEarned.Equal(dec("60")))
}

func TestCommissionPaymentTransition(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("pending to paid requires transaction id", func(t *testing.T) {
		p := &domain.CommissionPayment{Status: domain.PaymentPending}
		assert.ErrorIs(t, p.Transition(domain.PaymentPaid, "  ", at), domain.ErrValidation)

		require.NoError(t, p.Transition(domain.PaymentPaid, "pix-123", at))
		assert.Equal(t, domain.PaymentPaid, p.Status)
		assert.Equal(t, "pix-123", p.TransactionID)
		require.NotNil(t, p.PaymentDate)
		assert.Equal(t, at, *p.PaymentDate)
	})

	t.Run("pending to failed", func(t *testing.T) {
		p := &domain.CommissionPayment{Status: domain.PaymentPending}
		require.NoError(t, p.Transition(domain.PaymentFailed, "", at))
		assert.Equal(t, domain.PaymentFailed, p.Status)
		assert.Nil(t, p.PaymentDate)
	})

	t.Run("settled payments are final", func(t *testing.T) {
		p := &domain.CommissionPayment{Status: domain.PaymentPaid}
		assert.ErrorIs(t, p.Transition(domain.PaymentFailed, "", at), domain.ErrInvalidStatusTransition)
	})

	t.Run("back to pending is rejected", func(t *testing.T) {
		p := &domain.CommissionPayment{Status: domain.PaymentPending}
		assert.ErrorIs(t, p.Transition(domain.PaymentPending, "", at), domain.ErrInvalidStatusTransition)
	})
}

func TestSaleApplyCommission(t *testing.T) {
	withManager := &domain.Sale{SaleValue: dec("250"), ManagerID: "mgr-1"}
	withManager.ApplyCommission(dec("10"), dec("2"))
	assert.True(t, withManager.CommissionCalculated)
	assert.True(t, withManager.InfluencerCommissionEarned.Equal(dec("25")))
	assert.True(t, withManager.ManagerCommissionEarned.Equal(dec("5")))

	solo := &domain.Sale{SaleValue: dec("250")}
	solo.ApplyCommission(dec("10"), dec("2"))
	assert.True(t, solo.ManagerCommissionEarned.IsZero())
	assert.True(t, solo.ManagerPercentage.IsZero())
	assert.Equal(t, "", solo.PayeeFor(domain.RoleManager))
}
