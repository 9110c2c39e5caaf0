package grpcapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payment"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/tier"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ CommissionServiceServer = (*CommissionHandler)(nil)

type CommissionHandler struct {
	UnimplementedCommissionServiceServer
	tierUsecase    tier.TierUsecase
	saleUsecase    sale.SaleUsecase
	paymentUsecase payment.PaymentUsecase
}

func NewCommissionHandler(tierUsecase tier.TierUsecase, saleUsecase sale.SaleUsecase, paymentUsecase payment.PaymentUsecase) *CommissionHandler {
	return &CommissionHandler{
		tierUsecase:    tierUsecase,
		saleUsecase:    saleUsecase,
		paymentUsecase: paymentUsecase,
	}
}

func (h *CommissionHandler) PreviewCommission(ctx context.Context, r *PreviewCommissionRequest) (*PreviewCommissionResponse, error) {
	value, err := decimal.NewFromString(r.SaleValue)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "sale_value must be a decimal number")
	}
	out, err := h.tierUsecase.PreviewCommission(ctx, &tierdto.PreviewInput{Role: r.Role, SaleValue: value})
	if err != nil {
		return nil, toStatus(err)
	}
	return &PreviewCommissionResponse{
		Percentage: out.Percentage.String(),
		Commission: out.Commission.StringFixed(2),
		TierID:     out.TierID,
		TierName:   out.TierName,
	}, nil
}

func (h *CommissionHandler) ListTiers(ctx context.Context, r *ListTiersRequest) (*ListTiersResponse, error) {
	tiers, err := h.tierUsecase.ListTiers(ctx, &tierdto.ListTiersInput{Role: r.Role, IncludeInactive: r.IncludeInactive})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &ListTiersResponse{Tiers: make([]Tier, 0, len(tiers))}
	for _, t := range tiers {
		msg := Tier{
			ID:                   t.ID,
			Name:                 t.Name,
			MinSalesValue:        t.MinSalesValue.StringFixed(2),
			CommissionPercentage: t.CommissionPercentage.String(),
			AppliesTo:            string(t.AppliesTo),
			IsActive:             t.IsActive,
		}
		if t.MaxSalesValue != nil {
			msg.MaxSalesValue = t.MaxSalesValue.StringFixed(2)
		}
		resp.Tiers = append(resp.Tiers, msg)
	}
	return resp, nil
}

func (h *CommissionHandler) ProcessPendingCommissions(ctx context.Context, _ *ProcessPendingRequest) (*ProcessPendingResponse, error) {
	out, err := h.saleUsecase.ProcessPendingCommissions(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProcessPendingResponse{
		ProcessedCount:            int32(out.ProcessedCount),
		TotalInfluencerCommission: out.TotalInfluencerCommission.StringFixed(2),
		TotalManagerCommission:    out.TotalManagerCommission.StringFixed(2),
	}, nil
}

func (h *CommissionHandler) GeneratePayments(ctx context.Context, r *GeneratePaymentsRequest) (*GeneratePaymentsResponse, error) {
	start, err := parseBound(r.PeriodStart)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "period_start: "+err.Error())
	}
	end, err := parseBound(r.PeriodEnd)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "period_end: "+err.Error())
	}

	out, err := h.paymentUsecase.GenerateCommissionPayments(ctx, &paymentdto.GeneratePaymentsInput{PeriodStart: start, PeriodEnd: end})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &GeneratePaymentsResponse{
		PaymentsCreated:  int32(out.PaymentsCreated),
		PendingProcessed: int32(out.PendingProcessed),
		Payments:         make([]Payment, 0, len(out.Payments)),
	}
	for _, p := range out.Payments {
		resp.Payments = append(resp.Payments, toPayment(p))
	}
	return resp, nil
}

func (h *CommissionHandler) GetPayment(ctx context.Context, r *GetPaymentRequest) (*PaymentResponse, error) {
	p, err := h.paymentUsecase.GetPayment(ctx, r.PaymentID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &PaymentResponse{Payment: toPayment(p)}, nil
}

func (h *CommissionHandler) UpdatePaymentStatus(ctx context.Context, r *UpdatePaymentStatusRequest) (*PaymentResponse, error) {
	p, err := h.paymentUsecase.UpdatePaymentStatus(ctx, &paymentdto.UpdatePaymentStatusInput{
		PaymentID:     r.PaymentID,
		Status:        r.Status,
		TransactionID: r.TransactionID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &PaymentResponse{Payment: toPayment(p)}, nil
}

func parseBound(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func toPayment(p *domain.CommissionPayment) Payment {
	return Payment{
		ID:                 p.ID,
		UserID:             p.UserID,
		RoleAtPayment:      string(p.RoleAtPayment),
		SaleIDs:            p.SaleIDs,
		TotalSalesValue:    p.TotalSalesValue.StringFixed(2),
		CommissionEarned:   p.CommissionEarned.StringFixed(2),
		PaymentPeriodStart: p.PaymentPeriodStart.UTC().Format(time.RFC3339),
		PaymentPeriodEnd:   p.PaymentPeriodEnd.UTC().Format(time.RFC3339),
		Status:             string(p.Status),
		TransactionID:      p.TransactionID,
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrMalformedPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrGenerationInProgress), errors.Is(err, domain.ErrSalesAlreadyBatched):
		return status.Error(codes.Aborted, err.Error())
	default:
		slog.Error("grpc call failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
