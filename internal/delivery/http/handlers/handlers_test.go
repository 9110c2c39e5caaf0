package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	fakes "github.com/LavaJover/shvark-commission-service/internal/testutil"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

const secret = "s3cret"

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	router http.Handler
	sales  *fakes.SaleStore
	saleUC *sale.DefaultSaleUsecase
	payUC  *payment.DefaultPaymentUsecase
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWithSecret(t, secret)
}

func newServerWithSecret(t *testing.T, genericSecret string) *server {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewCommissionMetrics(reg)

	sales := fakes.NewSaleStore()
	upper := decimal.NewFromInt(1000)
	tiers := fakes.NewTierStore(
		&domain.CommissionTier{ID: "t1", Name: "base", MinSalesValue: decimal.Zero, MaxSalesValue: &upper, CommissionPercentage: decimal.NewFromInt(10), AppliesTo: domain.RoleInfluencer, IsActive: true},
	)
	users := fakes.NewUserDirectory(&domain.User{ID: "inf-1", Name: "Antonio", CouponCode: "ANTONIO10"})

	saleUC := sale.NewDefaultSaleUsecase(sales, tiers, users, webhook.NewDefaultNormalizer(), &fakes.Messenger{}, &fakes.EventPublisher{}, &fakes.IntakeLog{}, m)
	payUC := payment.NewDefaultPaymentUsecase(fakes.NewPaymentStore(sales), sales, users, saleUC, lock.NewLocalLocker(), &fakes.Messenger{}, &fakes.EventPublisher{}, m)

	router := handlers.NewRouter(handlers.Handlers{
		Webhook:  handlers.NewWebhookHandler(saleUC, genericSecret),
		Tier:     handlers.NewTierHandler(tier.NewDefaultTierUsecase(tiers)),
		Payment:  handlers.NewPaymentHandler(payUC),
		Gatherer: reg,
	})
	return &server{router: router, sales: sales, saleUC: saleUC, payUC: payUC}
}

func (s *server) do(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.saleUC.Wait()
	s.payUC.Wait()

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

var admin = map[string]string{"X-User-ID": "admin-1", "X-User-Role": "admin"}

func TestWebhook(t *testing.T) {
	s := newServer(t)
	body := `{"order":{"id":"CP-1","total_price":"200.00","discount_codes":"antonio10"}}`

	rec, env := s.do(t, http.MethodPost, "/webhooks/cartpanda", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "created", out["status"])
	assert.Equal(t, "20.00", out["influencer_commission"])

	rec, env = s.do(t, http.MethodPost, "/webhooks/cartpanda", body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "already_processed", out["status"])

	rec, _ = s.do(t, http.MethodPost, "/webhooks/cartpanda", `{"order":{"id":"CP-2","total_price":"5","discount_codes":"nobody"}}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/webhooks/cartpanda", `{"order":{"total_price":"5"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MALFORMED_PAYLOAD", env.Code)

	rec, env = s.do(t, http.MethodPost, "/webhooks/woocommerce", `{}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UNKNOWN_SOURCE", env.Code)
}

func TestWebhook_GenericSecret(t *testing.T) {
	s := newServer(t)
	body := `{"order_id":"G-1","total_value":"10","coupon_code":"ANTONIO10"}`

	rec, _ := s.do(t, http.MethodPost, "/webhooks/generic", body, map[string]string{"X-Webhook-Secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, s.sales.Count())

	rec, _ = s.do(t, http.MethodPost, "/webhooks/generic", body, map[string]string{"X-Webhook-Secret": secret})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWebhook_GenericDisabledWithoutSecret(t *testing.T) {
	s := newServerWithSecret(t, "")
	body := `{"order_id":"G-2","total_value":"99999","coupon_code":"ANTONIO10"}`

	rec, env := s.do(t, http.MethodPost, "/webhooks/generic", body, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	rec, _ = s.do(t, http.MethodPost, "/webhooks/generic", body, map[string]string{"X-Webhook-Secret": ""})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, s.sales.Count())

	rec, _ = s.do(t, http.MethodPost, "/webhooks/cartpanda", `{"order":{"id":"CP-3","total_price":"5","discount_codes":"antonio10"}}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, "platform webhooks are unaffected")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/tiers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/tiers", "", map[string]string{"X-User-ID": "u1", "X-User-Role": "influencer"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/tiers", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTierRoutes(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(t, http.MethodPut, "/api/v1/tiers/roles/influencer", `{"tiers":[
		{"min_sales_value":"0","max_sales_value":"1000","commission_percentage":"10"},
		{"min_sales_value":"1000.01","commission_percentage":"15"}]}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var replaced struct {
		TiersCreated int `json:"tiers_created"`
		Tiers        []struct {
			Name string `json:"name"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &replaced))
	assert.Equal(t, 2, replaced.TiersCreated)
	assert.Equal(t, "1000.01+", replaced.Tiers[1].Name)

	rec, env = s.do(t, http.MethodPut, "/api/v1/tiers/roles/influencer", `{"tiers":[{"min_sales_value":"0","commission_percentage":"150"}]}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	assert.Equal(t, "tiers[0].commission_percentage", env.Field)

	rec, env = s.do(t, http.MethodGet, "/api/v1/commission/preview?role=influencer&sale_value=2000", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var preview map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, "300.00", preview["commission"])

	rec, _ = s.do(t, http.MethodGet, "/api/v1/commission/preview?role=influencer&sale_value=abc", "", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/tiers/missing", "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentRoutes(t *testing.T) {
	s := newServer(t)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	s.sales.Put(&domain.Sale{ID: "s1", OrderID: "o1", InfluencerID: "inf-1", SaleValue: decimal.NewFromInt(100), TransactionDate: day.Add(time.Hour)})

	rec, env := s.do(t, http.MethodPost, "/api/v1/payments/generate", `{"period_start":"2024-05-31","period_end":"2024-05-01"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PERIOD", env.Code)

	period := day.Format("2006-01-02")
	rec, env = s.do(t, http.MethodPost, "/api/v1/payments/generate", `{"period_start":"`+period+`","period_end":"`+period+`"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var generated struct {
		PaymentsCreated  int `json:"payments_created"`
		PendingProcessed int `json:"pending_processed"`
		Payments         []struct {
			ID               string `json:"id"`
			CommissionEarned string `json:"commission_earned"`
		} `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &generated))
	require.Equal(t, 1, generated.PaymentsCreated)
	assert.Equal(t, 1, generated.PendingProcessed)
	assert.Equal(t, "10.00", generated.Payments[0].CommissionEarned)
	id := generated.Payments[0].ID

	rec, _ = s.do(t, http.MethodGet, "/api/v1/payments/"+id, "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPatch, "/api/v1/payments/"+id+"/status", `{"status":"paid"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "transaction_id", env.Field)

	rec, _ = s.do(t, http.MethodPatch, "/api/v1/payments/"+id+"/status", `{"status":"paid","transaction_id":"PIX-1"}`, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPatch, "/api/v1/payments/"+id+"/status", `{"status":"failed"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", env.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/payments?status=paid", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 1)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	rec, _ := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, _ = s.do(t, http.MethodPost, "/webhooks/cartpanda", `{"order":{"id":"CP-9","total_price":"1","discount_codes":"x"}}`, nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	s.router.ServeHTTP(mrec, req)
	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "commission_sales_ingested_total")
}
