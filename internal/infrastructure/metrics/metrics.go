package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// CommissionMetrics holds the collectors for sale intake, commission and
// payout activity.
type CommissionMetrics struct {
	// Intake
	SalesIngestedTotal    *prometheus.CounterVec
	WebhookMalformedTotal *prometheus.CounterVec
	SaleValueTotal        *prometheus.CounterVec
	IngestionDuration     *prometheus.HistogramVec

	// Commission
	CommissionEarnedTotal *prometheus.CounterVec
	PendingProcessedTotal prometheus.Counter

	// Payouts
	PaymentsCreatedTotal *prometheus.CounterVec
	PaymentAmountTotal   *prometheus.CounterVec

	// Errors
	NotificationFailures *prometheus.CounterVec
}

func NewCommissionMetrics(reg prometheus.Registerer) *CommissionMetrics {
	factory := promauto.With(reg)
	return &CommissionMetrics{
		SalesIngestedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_sales_ingested_total",
				Help: "Webhook deliveries by source and intake outcome",
			},
			[]string{"source", "outcome"},
		),
		WebhookMalformedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_webhook_malformed_total",
				Help: "Webhook payloads rejected as malformed",
			},
			[]string{"source"},
		),
		SaleValueTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_sale_value_total",
				Help: "Sum of recorded sale values",
			},
			[]string{"source"},
		),
		IngestionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commission_ingestion_duration_seconds",
				Help:    "Time spent ingesting one webhook delivery",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"source"},
		),
		CommissionEarnedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_earned_total",
				Help: "Commission credited to sales by payee role",
			},
			[]string{"role"},
		),
		PendingProcessedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "commission_pending_processed_total",
				Help: "Sales whose commission was filled in by a pending sweep",
			},
		),
		PaymentsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_payments_created_total",
				Help: "Commission payment batches created",
			},
			[]string{"role"},
		),
		PaymentAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_payment_amount_total",
				Help: "Commission amount placed into payment batches",
			},
			[]string{"role"},
		),
		NotificationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_notification_failures_total",
				Help: "Notifications that could not be delivered",
			},
			[]string{"kind"},
		),
	}
}

// RecordIntake counts one delivery and its processing time.
func (m *CommissionMetrics) RecordIntake(source, outcome string, durationSeconds float64) {
	m.SalesIngestedTotal.WithLabelValues(source, outcome).Inc()
	m.IngestionDuration.WithLabelValues(source).Observe(durationSeconds)
}

func (m *CommissionMetrics) RecordMalformed(source string) {
	m.WebhookMalformedTotal.WithLabelValues(source).Inc()
}

// RecordSale adds a new sale's value and the commission it generated.
func (m *CommissionMetrics) RecordSale(source string, value, influencerEarned, managerEarned decimal.Decimal) {
	m.SaleValueTotal.WithLabelValues(source).Add(value.InexactFloat64())
	m.CommissionEarnedTotal.WithLabelValues("influencer").Add(influencerEarned.InexactFloat64())
	m.CommissionEarnedTotal.WithLabelValues("manager").Add(managerEarned.InexactFloat64())
}

func (m *CommissionMetrics) RecordPendingProcessed(influencerEarned, managerEarned decimal.Decimal) {
	m.PendingProcessedTotal.Inc()
	m.CommissionEarnedTotal.WithLabelValues("influencer").Add(influencerEarned.InexactFloat64())
	m.CommissionEarnedTotal.WithLabelValues("manager").Add(managerEarned.InexactFloat64())
}

func (m *CommissionMetrics) RecordPaymentCreated(role string, amount decimal.Decimal) {
	m.PaymentsCreatedTotal.WithLabelValues(role).Inc()
	m.PaymentAmountTotal.WithLabelValues(role).Add(amount.InexactFloat64())
}

func (m *CommissionMetrics) RecordNotificationFailure(kind string) {
	m.NotificationFailures.WithLabelValues(kind).Inc()
}
