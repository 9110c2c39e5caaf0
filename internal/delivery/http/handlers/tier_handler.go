package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	tierdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/tier"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/tier"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type TierHandler struct {
	uc tier.TierUsecase
}

func NewTierHandler(uc tier.TierUsecase) *TierHandler {
	return &TierHandler{uc: uc}
}

func (h *TierHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))
	tiers, err := h.uc.ListTiers(r.Context(), &tierdto.ListTiersInput{
		Role:            r.URL.Query().Get("role"),
		IncludeInactive: includeInactive,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toTierResponses(tiers))
}

func (h *TierHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.uc.GetTier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toTierResponse(t))
}

func (h *TierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tierdto.CreateTierInput
	if err := decodeJSON(r, &in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	t, err := h.uc.CreateTier(r.Context(), &in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toTierResponse(t))
}

func (h *TierHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in tierdto.UpdateTierInput
	if err := decodeJSON(r, &in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	in.ID = chi.URLParam(r, "id")
	t, err := h.uc.UpdateTier(r.Context(), &in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, toTierResponse(t))
}

func (h *TierHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeactivateTier(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Replace swaps the whole tier set of one role.
func (h *TierHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var in tierdto.ReplaceTiersInput
	if err := decodeJSON(r, &in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	in.Role = chi.URLParam(r, "role")

	out, err := h.uc.ReplaceTiers(r.Context(), &in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("tiers replaced via api", "admin_id", adminFromContext(r.Context()), "role", out.Role, "count", out.TiersCreated)
	writeSuccess(w, http.StatusOK, response.ReplaceTiersResponse{
		Role:         string(out.Role),
		TiersCreated: out.TiersCreated,
		Tiers:        toTierResponses(out.Tiers),
	})
}

func (h *TierHandler) Preview(w http.ResponseWriter, r *http.Request) {
	value, err := decimal.NewFromString(r.URL.Query().Get("sale_value"))
	if err != nil {
		writeDomainError(w, r, domain.NewValidationError("sale_value", "must be a decimal number"))
		return
	}
	out, err := h.uc.PreviewCommission(r.Context(), &tierdto.PreviewInput{
		Role:      r.URL.Query().Get("role"),
		SaleValue: value,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, response.PreviewResponse{
		Role:       string(out.Role),
		SaleValue:  out.SaleValue.StringFixed(2),
		Percentage: out.Percentage.String(),
		Commission: out.Commission.StringFixed(2),
		TierID:     out.TierID,
		TierName:   out.TierName,
	})
}

func toTierResponse(t *domain.CommissionTier) response.TierResponse {
	resp := response.TierResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		MinSalesValue:        t.MinSalesValue.StringFixed(2),
		CommissionPercentage: t.CommissionPercentage.String(),
		AppliesTo:            string(t.AppliesTo),
		IsActive:             t.IsActive,
		CreatedAt:            formatTime(t.CreatedAt),
		UpdatedAt:            formatTime(t.UpdatedAt),
	}
	if t.MaxSalesValue != nil {
		upper := t.MaxSalesValue.StringFixed(2)
		resp.MaxSalesValue = &upper
	}
	return resp
}

func toTierResponses(tiers []*domain.CommissionTier) []response.TierResponse {
	out := make([]response.TierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, toTierResponse(t))
	}
	return out
}
