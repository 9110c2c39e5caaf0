package webhook_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

func TestCartPandaCouponEncodings(t *testing.T) {
	n := webhook.NewDefaultNormalizer()

	payloads := map[string]string{
		"string":          `{"order":{"id":1001,"total_price":"150.00","discount_codes":"x"}}`,
		"array of string": `{"order":{"id":1001,"total_price":"150.00","discount_codes":["", "x", "y"]}}`,
		"array of object": `{"order":{"id":1001,"total_price":"150.00","discount_codes":[{"code":"x"}]}}`,
		"single object":   `{"order":{"id":1001,"total_price":"150.00","discount_codes":{"code":"x"}}}`,
	}

	for name, body := range payloads {
		t.Run(name, func(t *testing.T) {
			intake, err := n.Normalize(domain.SourceCartPanda, []byte(body))
			require.NoError(t, err)
			assert.Equal(t, "x", intake.CouponRaw)
			assert.Equal(t, "1001", intake.OrderID)
			assert.True(t, intake.TotalValue.Equal(decimal.RequireFromString("150")))
			assert.Equal(t, domain.SourceCartPanda, intake.Source)
			assert.NotEmpty(t, intake.PayloadHash)
		})
	}
}

func TestCartPandaTopLevelOrderAndFallbacks(t *testing.T) {
	body := `{"order_id":"CP-77","total":"R$ 1.234,56","coupon_code":"antonio10","paid_at":"2024-05-02T13:04:05Z"}`

	intake, err := webhook.NewDefaultNormalizer().Normalize(domain.SourceCartPanda, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "CP-77", intake.OrderID)
	assert.Equal(t, "antonio10", intake.CouponRaw)
	assert.True(t, intake.TotalValue.Equal(decimal.RequireFromString("1234.56")), intake.TotalValue.String())
	assert.Equal(t, time.Date(2024, 5, 2, 13, 4, 5, 0, time.UTC), intake.OccurredAt)
}

func TestShopifyOrder(t *testing.T) {
	body := `{
		"id": 820982911946154508,
		"name": "#9999",
		"total_price": "403.00",
		"current_total_price": "398.00",
		"discount_codes": [{"code": "MARIA15", "amount": "5.00", "type": "fixed_amount"}],
		"processed_at": "2024-02-10T09:30:00-03:00"
	}`

	intake, err := webhook.NewDefaultNormalizer().Normalize(domain.SourceShopify, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "820982911946154508", intake.OrderID)
	assert.True(t, intake.TotalValue.Equal(decimal.RequireFromString("398")))
	assert.Equal(t, "MARIA15", intake.CouponRaw)
	assert.Equal(t, time.Date(2024, 2, 10, 12, 30, 0, 0, time.UTC), intake.OccurredAt)
}

func TestShopifyDiscountApplicationFallback(t *testing.T) {
	body := `{"id":5,"total_price_set":{"shop_money":{"amount":"10.50"}},"discount_applications":[{"code":"  "},{"code":"SUMMER"}]}`

	intake, err := webhook.NewDefaultNormalizer().Normalize(domain.SourceShopify, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "SUMMER", intake.CouponRaw)
	assert.True(t, intake.TotalValue.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, intake.OccurredAt.IsZero())
}

func TestGenericOrderVariants(t *testing.T) {
	n := webhook.NewDefaultNormalizer()

	snake, err := n.Normalize(domain.SourceGeneric, []byte(`{"order_id":"A1","total_value":99.9,"coupon_code":"ana","occurred_at":1714655045}`))
	require.NoError(t, err)
	camel, err := n.Normalize(domain.SourceGeneric, []byte(`{"order":{"orderId":"A1","totalValue":"$99.90","couponCode":["ana"],"occurredAt":"2024-05-02 13:04:05"}}`))
	require.NoError(t, err)

	assert.Equal(t, snake.OrderID, camel.OrderID)
	assert.Equal(t, snake.CouponRaw, camel.CouponRaw)
	assert.True(t, snake.TotalValue.Equal(camel.TotalValue))
	assert.Equal(t, time.Unix(1714655045, 0).UTC(), snake.OccurredAt)
	assert.Equal(t, snake.OccurredAt, camel.OccurredAt)
}

func TestNormalizeMalformedPayloads(t *testing.T) {
	n := webhook.NewDefaultNormalizer()

	tests := []struct {
		name   string
		source domain.Source
		body   string
	}{
		{name: "not json", source: domain.SourceCartPanda, body: `order=1`},
		{name: "json array", source: domain.SourceShopify, body: `[1,2]`},
		{name: "empty object", source: domain.SourceGeneric, body: `{}`},
		{name: "missing order id", source: domain.SourceCartPanda, body: `{"order":{"total_price":"10"}}`},
		{name: "missing total", source: domain.SourceShopify, body: `{"id":1,"discount_codes":[{"code":"x"}]}`},
		{name: "total without digits", source: domain.SourceGeneric, body: `{"order_id":"1","total":"free"}`},
		{name: "negative total", source: domain.SourceGeneric, body: `{"order_id":"1","total":-5}`},
		{name: "total out of range", source: domain.SourceGeneric, body: `{"order_id":"1","total":1000000000000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.source, []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestNormalizeRoundsTotalToCents(t *testing.T) {
	n := webhook.NewDefaultNormalizer()

	intake, err := n.Normalize(domain.SourceGeneric, []byte(`{"order_id":"R1","total":"10.005"}`))
	require.NoError(t, err)
	assert.Equal(t, "10.01", intake.TotalValue.String())

	intake, err = n.Normalize(domain.SourceCartPanda, []byte(`{"order":{"id":"R2","total_price":999999999999.99}}`))
	require.NoError(t, err)
	assert.True(t, intake.TotalValue.Equal(domain.MaxMoneyValue))
}

func TestNormalizeUnknownSource(t *testing.T) {
	_, err := webhook.NewDefaultNormalizer().Normalize("woocommerce", []byte(`{"id":1,"total":1}`))
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestPayloadHashIsStable(t *testing.T) {
	body := []byte(`{"id":1}`)
	assert.Equal(t, webhook.PayloadHash(body), webhook.PayloadHash(body))
	assert.NotEqual(t, webhook.PayloadHash(body), webhook.PayloadHash([]byte(`{"id":2}`)))
}
