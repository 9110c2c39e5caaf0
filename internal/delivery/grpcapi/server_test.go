package grpcapi_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	fakes "github.com/LavaJover/shvark-commission-service/internal/testutil"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
)

func startServer(t *testing.T) (*grpcapi.Server, *grpc.ClientConn, *fakes.SaleStore) {
	t.Helper()
	sales := fakes.NewSaleStore()
	tiers := fakes.NewTierStore(&domain.CommissionTier{ID: "t1", Name: "0.00+", MinSalesValue: decimal.Zero, CommissionPercentage: decimal.NewFromInt(10), AppliesTo: domain.RoleInfluencer, IsActive: true})
	users := fakes.NewUserDirectory()

	saleUC := sale.NewDefaultSaleUsecase(sales, tiers, users, webhook.NewDefaultNormalizer(), &fakes.Messenger{}, nil, nil, nil)
	payUC := payment.NewDefaultPaymentUsecase(fakes.NewPaymentStore(sales), sales, users, saleUC, lock.NewLocalLocker(), nil, nil, nil)
	srv := grpcapi.NewServer(grpcapi.NewCommissionHandler(tier.NewDefaultTierUsecase(tiers), saleUC, payUC))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return srv, conn, sales
}

func invoke(ctx context.Context, conn *grpc.ClientConn, method string, req, resp any) error {
	return conn.Invoke(ctx, "/commission.v1.CommissionService/"+method, req, resp, grpc.CallContentSubtype("json"))
}

func TestHealthFlipsToServing(t *testing.T) {
	srv, conn, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	srv.MarkServing()
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "commission.v1.CommissionService"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestCommissionService(t *testing.T) {
	_, conn, sales := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var preview grpcapi.PreviewCommissionResponse
	require.NoError(t, invoke(ctx, conn, "PreviewCommission", &grpcapi.PreviewCommissionRequest{Role: "influencer", SaleValue: "250"}, &preview))
	assert.Equal(t, "25.00", preview.Commission)

	err := invoke(ctx, conn, "PreviewCommission", &grpcapi.PreviewCommissionRequest{Role: "boss", SaleValue: "1"}, &preview)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	sales.Put(&domain.Sale{ID: "s1", OrderID: "o1", InfluencerID: "inf-1", SaleValue: decimal.NewFromInt(100), TransactionDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)})
	var generated grpcapi.GeneratePaymentsResponse
	require.NoError(t, invoke(ctx, conn, "GeneratePayments", &grpcapi.GeneratePaymentsRequest{PeriodStart: "2024-05-01", PeriodEnd: "2024-05-31"}, &generated))
	require.Len(t, generated.Payments, 1)
	assert.Equal(t, int32(1), generated.PendingProcessed)
	assert.Equal(t, "10.00", generated.Payments[0].CommissionEarned)

	err = invoke(ctx, conn, "GeneratePayments", &grpcapi.GeneratePaymentsRequest{PeriodStart: "2024-05-31", PeriodEnd: "2024-05-01"}, &generated)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	var updated grpcapi.PaymentResponse
	require.NoError(t, invoke(ctx, conn, "UpdatePaymentStatus", &grpcapi.UpdatePaymentStatusRequest{PaymentID: generated.Payments[0].ID, Status: "paid", TransactionID: "tx"}, &updated))
	assert.Equal(t, "paid", updated.Payment.Status)

	err = invoke(ctx, conn, "GetPayment", &grpcapi.GetPaymentRequest{PaymentID: "missing"}, &updated)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
