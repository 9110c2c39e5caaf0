package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/payment"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type PaymentHandler struct {
	uc payment.PaymentUsecase
}

func NewPaymentHandler(uc payment.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GeneratePaymentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	start, err := parsePeriodBound("period_start", req.PeriodStart)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	end, err := parsePeriodBound("period_end", req.PeriodEnd)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out, err := h.uc.GenerateCommissionPayments(r.Context(), &paymentdto.GeneratePaymentsInput{PeriodStart: start, PeriodEnd: end})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := response.GeneratePaymentsResponse{
		PaymentsCreated:  out.PaymentsCreated,
		PendingProcessed: out.PendingProcessed,
		TotalsByRole:     make(map[string]response.RoleTotalsResponse, len(out.TotalsByRole)),
		Payments:         toPaymentResponses(out.Payments),
	}
	for role, totals := range out.TotalsByRole {
		resp.TotalsByRole[string(role)] = response.RoleTotalsResponse{
			Payments:         totals.Payments,
			TotalSalesValue:  totals.TotalSalesValue.StringFixed(2),
			CommissionEarned: totals.CommissionEarned.StringFixed(2),
		}
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	payments, err := h.uc.ListPayments(r.Context(), &paymentdto.ListPaymentsInput{
		UserID: q.Get("user_id"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPaymentResponse(p))
}

func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	p, err := h.uc.UpdatePaymentStatus(r.Context(), &paymentdto.UpdatePaymentStatusInput{
		PaymentID:     chi.URLParam(r, "id"),
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPaymentResponse(p))
}

func parsePeriodBound(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError(field, "is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return t, nil
}

func toPaymentResponse(p *domain.CommissionPayment) response.PaymentResponse {
	resp := response.PaymentResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		RoleAtPayment:      string(p.RoleAtPayment),
		SaleIDs:            p.SaleIDs,
		SalesCount:         p.SalesCount(),
		TotalSalesValue:    p.TotalSalesValue.StringFixed(2),
		CommissionEarned:   p.CommissionEarned.StringFixed(2),
		PaymentPeriodStart: formatTime(p.PaymentPeriodStart),
		PaymentPeriodEnd:   formatTime(p.PaymentPeriodEnd),
		CalculationDate:    formatTime(p.CalculationDate),
		Status:             string(p.Status),
		TransactionID:      p.TransactionID,
	}
	if resp.SaleIDs == nil {
		resp.SaleIDs = []string{}
	}
	if p.PaymentDate != nil {
		paid := formatTime(*p.PaymentDate)
		resp.PaymentDate = &paid
	}
	return resp
}

func toPaymentResponses(payments []*domain.CommissionPayment) []response.PaymentResponse {
	out := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}
