package sale_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	fakes "github.com/LavaJover/shvark-commission-service/internal/testutil"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func standardTiers() []*domain.CommissionTier {
	return []*domain.CommissionTier{
		{ID: "i1", MinSalesValue: dec("0"), MaxSalesValue: decPtr("1000"), CommissionPercentage: dec("10"), AppliesTo: domain.RoleInfluencer, IsActive: true},
		{ID: "i2", MinSalesValue: dec("1000.01"), MaxSalesValue: decPtr("5000"), CommissionPercentage: dec("15"), AppliesTo: domain.RoleInfluencer, IsActive: true},
		{ID: "i3", MinSalesValue: dec("5000.01"), CommissionPercentage: dec("20"), AppliesTo: domain.RoleInfluencer, IsActive: true},
		{ID: "m1", MinSalesValue: dec("0"), CommissionPercentage: dec("5"), AppliesTo: domain.RoleManager, IsActive: true},
	}
}

type harness struct {
	sales     *fakes.SaleStore
	tiers     *fakes.TierStore
	users     *fakes.UserDirectory
	messenger *fakes.Messenger
	events    *fakes.EventPublisher
	intake    *fakes.IntakeLog
	metrics   *metrics.CommissionMetrics
	uc        *sale.DefaultSaleUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sales: fakes.NewSaleStore(),
		tiers: fakes.NewTierStore(standardTiers()...),
		users: fakes.NewUserDirectory(
			&domain.User{ID: "mgr-1", Name: "Carla", NotificationToken: "carla-token", SaleMessageTemplate: "{name}: pedido {order_id}, comissão {commission}"},
			&domain.User{ID: "mgr-2", Name: "Davi", NotificationToken: "davi-token"},
			&domain.User{ID: "inf-1", Name: "Antonio", CouponCode: "ANTONIO10", ManagerID: "mgr-1", WhatsApp: "5511999990001"},
			&domain.User{ID: "inf-2", Name: "Bia", CouponCode: "BIA", WhatsApp: "5511999990002"},
		),
		messenger: &fakes.Messenger{},
		events:    &fakes.EventPublisher{},
		intake:    &fakes.IntakeLog{},
		metrics:   metrics.NewCommissionMetrics(prometheus.NewRegistry()),
	}
	h.uc = sale.NewDefaultSaleUsecase(h.sales, h.tiers, h.users, webhook.NewDefaultNormalizer(), h.messenger, h.events, h.intake, h.metrics)
	return h
}

func (h *harness) ingest(t *testing.T, source domain.Source, body string) (*saledto.IngestSaleOutput, error) {
	t.Helper()
	out, err := h.uc.IngestSale(context.Background(), &saledto.IngestSaleInput{Source: source, Payload: []byte(body)})
	h.uc.Wait()
	return out, err
}

func cartPanda(orderID, total, coupon string) string {
	return fmt.Sprintf(`{"event":"order.paid","order":{"id":%q,"total_price":%q,"discount_codes":[{"code":%q}],"paid_at":"2024-05-02T13:04:05Z"}}`, orderID, total, coupon)
}

func TestIngestSale_CreatesAttributedSale(t *testing.T) {
	h := newHarness(t)

	out, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-1", "1000.01", "antonio10"))
	require.NoError(t, err)

	assert.Equal(t, domain.IntakeCreated, out.Status)
	assert.NotEmpty(t, out.SaleID)
	assert.Equal(t, "inf-1", out.InfluencerID)
	assert.Equal(t, "mgr-1", out.ManagerID)
	assert.Equal(t, "15", out.InfluencerPercentage.String())
	assert.Equal(t, "150.00", out.InfluencerCommission.StringFixed(2))
	assert.Equal(t, "50.00", out.ManagerCommission.StringFixed(2))

	stored, err := h.sales.GetSaleByID(context.Background(), out.SaleID)
	require.NoError(t, err)
	assert.True(t, stored.CommissionCalculated)
	assert.True(t, stored.ProcessedViaWebhook)
	assert.Equal(t, "antonio10", stored.CouponCodeUsed)
	assert.Equal(t, time.Date(2024, 5, 2, 13, 4, 5, 0, time.UTC), stored.TransactionDate)

	sent := h.messenger.Notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "5511999990001", sent[0].Recipient)
	assert.Equal(t, "carla-token", sent[0].Credential)
	assert.Equal(t, "Antonio: pedido CP-1, comissão 150.00", sent[0].Message)

	require.Len(t, h.events.Sales, 1)
	assert.Equal(t, out.SaleID, h.events.Sales[0].ID)
	assert.Equal(t, []domain.IntakeOutcome{domain.IntakeCreated}, h.intake.Outcomes())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.SalesIngestedTotal.WithLabelValues("cartpanda", "created")))
}

func TestIngestSale_IdempotentReplay(t *testing.T) {
	h := newHarness(t)
	body := cartPanda("CP-2", "300", "ANTONIO10")

	first, err := h.ingest(t, domain.SourceCartPanda, body)
	require.NoError(t, err)
	second, err := h.ingest(t, domain.SourceCartPanda, body)
	require.NoError(t, err)

	assert.Equal(t, domain.IntakeAlreadyProcessed, second.Status)
	assert.Equal(t, first.SaleID, second.SaleID)
	assert.Equal(t, 1, h.sales.Count())
	assert.Len(t, h.messenger.Notifications(), 1, "replay must not notify again")
	assert.Len(t, h.events.Sales, 1)
}

func TestIngestSale_ConcurrentInsertResolvesToWinner(t *testing.T) {
	h := newHarness(t)
	winnerID := "winner-sale"

	var once sync.Once
	h.sales.CreateHook = func(s *domain.Sale) {
		once.Do(func() {
			h.sales.Put(&domain.Sale{ID: winnerID, OrderID: s.OrderID, InfluencerID: "inf-1", SaleValue: s.SaleValue, CommissionCalculated: true})
		})
	}

	out, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-RACE", "100", "ANTONIO10"))
	require.NoError(t, err)
	assert.Equal(t, domain.IntakeAlreadyProcessed, out.Status)
	assert.Equal(t, winnerID, out.SaleID)
	assert.Equal(t, 1, h.sales.Count())
	assert.Empty(t, h.messenger.Notifications())
}

func TestIngestSale_NotAttributed(t *testing.T) {
	h := newHarness(t)

	out, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-3", "100", "NOBODY"))
	require.NoError(t, err)
	assert.Equal(t, domain.IntakeNotAttributed, out.Status)
	assert.Empty(t, out.SaleID)
	assert.Equal(t, 0, h.sales.Count())

	out, err = h.ingest(t, domain.SourceGeneric, `{"order_id":"G-1","total_value":10}`)
	require.NoError(t, err)
	assert.Equal(t, domain.IntakeNotAttributed, out.Status)
	assert.Contains(t, out.Reason, "no coupon")

	assert.Equal(t, []domain.IntakeOutcome{domain.IntakeNotAttributed, domain.IntakeNotAttributed}, h.intake.Outcomes())
}

func TestIngestSale_Malformed(t *testing.T) {
	h := newHarness(t)

	_, err := h.ingest(t, domain.SourceCartPanda, `{"order":{"id":"CP-4"}}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedPayload))
	assert.Equal(t, 0, h.sales.Count())
	assert.Equal(t, []domain.IntakeOutcome{domain.IntakeMalformed}, h.intake.Outcomes())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.WebhookMalformedTotal.WithLabelValues("cartpanda")))

	_, err = h.ingest(t, "woocommerce", `{}`)
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestIngestSale_NoManagerAndNoCredential(t *testing.T) {
	h := newHarness(t)
	h.messenger.Err = domain.ErrNotificationSkipped

	out, err := h.ingest(t, domain.SourceShopify, `{"id":55,"total_price":"6000.00","discount_codes":[{"code":"bia"}]}`)
	require.NoError(t, err)
	assert.Equal(t, domain.IntakeCreated, out.Status)
	assert.Empty(t, out.ManagerID)
	assert.Equal(t, "1200.00", out.InfluencerCommission.StringFixed(2))
	assert.True(t, out.ManagerCommission.IsZero())

	sent := h.messenger.Notifications()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].Credential)
	assert.Contains(t, sent[0].Message, "Olá Bia!")
	assert.Equal(t, 0.0, testutil.ToFloat64(h.metrics.NotificationFailures.WithLabelValues("new_sale")))
}

func TestIngestSale_NotificationFailureDoesNotFailIngestion(t *testing.T) {
	h := newHarness(t)
	h.messenger.Err = errors.New("gateway down")
	h.events.Err = errors.New("broker down")

	out, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-5", "100", "ANTONIO10"))
	require.NoError(t, err)
	assert.Equal(t, domain.IntakeCreated, out.Status)
	assert.Equal(t, 1, h.sales.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.NotificationFailures.WithLabelValues("new_sale")))
}

func TestIngestSale_StorageErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.sales.CreateErr = errors.New("disk full")

	_, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-6", "100", "ANTONIO10"))
	require.Error(t, err)
	assert.Empty(t, h.messenger.Notifications())
	assert.Empty(t, h.intake.Outcomes())
}

func TestIngestSale_ManagerSnapshotStable(t *testing.T) {
	h := newHarness(t)

	first, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-7", "200", "ANTONIO10"))
	require.NoError(t, err)

	h.users.Put(&domain.User{ID: "inf-1", Name: "Antonio", CouponCode: "ANTONIO10", ManagerID: "mgr-2", WhatsApp: "5511999990001"})

	second, err := h.ingest(t, domain.SourceCartPanda, cartPanda("CP-8", "200", "ANTONIO10"))
	require.NoError(t, err)
	assert.Equal(t, "mgr-2", second.ManagerID)

	stored, err := h.sales.GetSaleByID(context.Background(), first.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "mgr-1", stored.ManagerID)
	assert.Equal(t, "10.00", stored.ManagerCommissionEarned.StringFixed(2))
}

func TestIngestSale_MissingTimestampFallsBackToNow(t *testing.T) {
	h := newHarness(t)

	out, err := h.ingest(t, domain.SourceGeneric, `{"orderId":"G-2","totalValue":"50","couponCode":"BIA"}`)
	require.NoError(t, err)

	stored, err := h.sales.GetSaleByID(context.Background(), out.SaleID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), stored.TransactionDate, 5*time.Second)
}

func TestProcessPendingCommissions(t *testing.T) {
	h := newHarness(t)
	day := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	h.sales.Put(&domain.Sale{ID: "p1", OrderID: "M-1", InfluencerID: "inf-1", ManagerID: "mgr-1", SaleValue: dec("100"), TransactionDate: day})
	h.sales.Put(&domain.Sale{ID: "p2", OrderID: "M-2", InfluencerID: "inf-2", SaleValue: dec("2000"), TransactionDate: day.Add(time.Hour)})
	h.sales.Put(&domain.Sale{ID: "p3", OrderID: "M-3", InfluencerID: "inf-2", SaleValue: dec("10"), TransactionDate: day, CommissionCalculated: true,
		InfluencerCommissionEarned: dec("1")})
	h.uc.PendingBatchSize = 1

	out, err := h.uc.ProcessPendingCommissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.ProcessedCount)
	assert.Equal(t, "310.00", out.TotalInfluencerCommission.StringFixed(2))
	assert.Equal(t, "5.00", out.TotalManagerCommission.StringFixed(2))

	p2, _ := h.sales.GetSaleByID(context.Background(), "p2")
	assert.True(t, p2.CommissionCalculated)
	assert.True(t, p2.ManagerCommissionEarned.IsZero())

	again, err := h.uc.ProcessPendingCommissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.ProcessedCount)
	assert.True(t, again.TotalInfluencerCommission.IsZero())
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.PendingProcessedTotal))
}

func TestCouponResolver(t *testing.T) {
	users := fakes.NewUserDirectory(
		&domain.User{ID: "inf-9", CouponCode: "Promo", ManagerID: "ghost"},
	)
	r := sale.NewCouponResolver(users)

	got, err := r.Resolve(context.Background(), "  PROMO ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "inf-9", got.Influencer.ID)
	assert.Equal(t, "ghost", got.ManagerID)
	assert.Nil(t, got.Manager)

	none, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, none)
}
