package handlers

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
	"github.com/go-chi/chi/v5"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	uc            sale.SaleUsecase
	genericSecret string
}

func NewWebhookHandler(uc sale.SaleUsecase, genericSecret string) *WebhookHandler {
	return &WebhookHandler{uc: uc, genericSecret: genericSecret}
}

// Receive answers 201 for a new sale and 200 for replays and unattributed
// orders, so platforms do not retry them. Generic deliveries are refused
// unless a shared secret is configured and matches.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	source := domain.Source(chi.URLParam(r, "source"))
	if source == domain.SourceGeneric {
		if h.genericSecret == "" {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "generic webhooks are disabled")
			return
		}
		got := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.genericSecret)) != 1 {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid webhook secret")
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "could not read body")
		return
	}
	if len(body) > maxWebhookBody {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "webhook body exceeds 1MB")
		return
	}

	out, err := h.uc.IngestSale(r.Context(), &saledto.IngestSaleInput{Source: source, Payload: body})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Status == domain.IntakeCreated {
		status = http.StatusCreated
	}
	writeSuccess(w, status, toIngestSaleResponse(out))
}

func (h *WebhookHandler) ProcessPending(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.ProcessPendingCommissions(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("pending commissions triggered", "admin_id", adminFromContext(r.Context()), "processed", out.ProcessedCount)
	writeSuccess(w, http.StatusOK, response.ProcessPendingResponse{
		ProcessedCount:            out.ProcessedCount,
		TotalInfluencerCommission: out.TotalInfluencerCommission.StringFixed(2),
		TotalManagerCommission:    out.TotalManagerCommission.StringFixed(2),
	})
}

func toIngestSaleResponse(out *saledto.IngestSaleOutput) response.IngestSaleResponse {
	resp := response.IngestSaleResponse{
		Status:       string(out.Status),
		SaleID:       out.SaleID,
		OrderID:      out.OrderID,
		Reason:       out.Reason,
		InfluencerID: out.InfluencerID,
		ManagerID:    out.ManagerID,
		SaleValue:    out.SaleValue.StringFixed(2),
	}
	if out.SaleID != "" {
		resp.InfluencerPercentage = out.InfluencerPercentage.String()
		resp.ManagerPercentage = out.ManagerPercentage.String()
		resp.InfluencerCommission = out.InfluencerCommission.StringFixed(2)
		resp.ManagerCommission = out.ManagerCommission.StringFixed(2)
	}
	return resp
}
