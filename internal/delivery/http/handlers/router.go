package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Webhook *WebhookHandler
	Tier    *TierHandler
	Payment *PaymentHandler
	// Gatherer serves /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	gatherer := h.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Post("/webhooks/{source}", h.Webhook.Receive)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/tiers", h.Tier.List)
		r.Post("/tiers", h.Tier.Create)
		r.Get("/tiers/{id}", h.Tier.Get)
		r.Put("/tiers/{id}", h.Tier.Update)
		r.Delete("/tiers/{id}", h.Tier.Deactivate)
		r.Put("/tiers/roles/{role}", h.Tier.Replace)
		r.Get("/commission/preview", h.Tier.Preview)

		r.Post("/commissions/process-pending", h.Webhook.ProcessPending)

		r.Post("/payments/generate", h.Payment.Generate)
		r.Get("/payments", h.Payment.List)
		r.Get("/payments/{id}", h.Payment.Get)
		r.Patch("/payments/{id}/status", h.Payment.UpdateStatus)
	})
	return r
}
