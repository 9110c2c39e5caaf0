package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/notifier"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/message"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/webhook"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngestSale records one webhook delivery. Normalization, deduplication,
// attribution, commission and persistence run in that order; notification
// and event publishing happen only after the sale is stored and never fail
// the call.
func (uc *DefaultSaleUsecase) IngestSale(ctx context.Context, input *saledto.IngestSaleInput) (*saledto.IngestSaleOutput, error) {
	started := uc.now()

	intake, err := uc.Normalizer.Normalize(input.Source, input.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			uc.recordMalformed(ctx, input, err, started)
		}
		return nil, err
	}

	out, err := uc.ingest(ctx, intake)
	if err != nil {
		slog.Error("sale ingestion failed", "source", intake.Source, "order_id", intake.OrderID, "error", err)
		return nil, err
	}

	uc.audit(ctx, &domain.IntakeEvent{
		Source:      intake.Source,
		OrderID:     intake.OrderID,
		CouponCode:  strings.TrimSpace(intake.CouponRaw),
		Outcome:     out.Status,
		Reason:      out.Reason,
		SaleID:      out.SaleID,
		PayloadHash: intake.PayloadHash,
		ReceivedAt:  started,
	})
	uc.recordIntakeMetrics(string(intake.Source), string(out.Status), started)
	return out, nil
}

func (uc *DefaultSaleUsecase) ingest(ctx context.Context, intake domain.SaleIntake) (*saledto.IngestSaleOutput, error) {
	existing, err := uc.SaleRepo.GetSaleByOrderID(ctx, intake.OrderID)
	if err == nil {
		return alreadyProcessed(existing), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup order %s: %w", intake.OrderID, err)
	}

	coupon := strings.TrimSpace(intake.CouponRaw)
	if coupon == "" {
		return notAttributed(intake, "no coupon code on order"), nil
	}
	attribution, err := uc.Resolver.Resolve(ctx, coupon)
	if err != nil {
		return nil, err
	}
	if attribution == nil {
		return notAttributed(intake, fmt.Sprintf("coupon %q matches no influencer", coupon)), nil
	}

	tiers, err := uc.TierRepo.ListTiers(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("load commission tiers: %w", err)
	}

	transactionDate := intake.OccurredAt
	if transactionDate.IsZero() {
		transactionDate = uc.now()
	}
	sale := &domain.Sale{
		ID:                  uuid.NewString(),
		OrderID:             intake.OrderID,
		Source:              intake.Source,
		InfluencerID:        attribution.Influencer.ID,
		ManagerID:           attribution.ManagerID,
		SaleValue:           intake.TotalValue,
		CouponCodeUsed:      coupon,
		TransactionDate:     transactionDate,
		ProcessedViaWebhook: true,
	}
	managerPct := decimal.Zero
	if sale.HasManager() {
		managerPct = domain.PercentageFor(tiers, domain.RoleManager, sale.SaleValue)
	}
	sale.ApplyCommission(domain.PercentageFor(tiers, domain.RoleInfluencer, sale.SaleValue), managerPct)

	if err := uc.SaleRepo.CreateSale(ctx, sale); err != nil {
		if !errors.Is(err, domain.ErrSaleAlreadyExists) {
			return nil, fmt.Errorf("create sale for order %s: %w", intake.OrderID, err)
		}
		// a concurrent delivery won the insert
		winner, lookupErr := uc.SaleRepo.GetSaleByOrderID(ctx, intake.OrderID)
		if lookupErr != nil {
			return nil, fmt.Errorf("resolve concurrent insert of order %s: %w", intake.OrderID, lookupErr)
		}
		return alreadyProcessed(winner), nil
	}

	slog.Info("sale recorded",
		"sale_id", sale.ID,
		"order_id", sale.OrderID,
		"source", sale.Source,
		"user_id", sale.InfluencerID,
		"manager_id", sale.ManagerID,
		"sale_value", sale.SaleValue.StringFixed(2),
	)
	uc.recordSaleMetrics(sale)
	uc.notifyNewSale(ctx, sale, attribution)
	uc.publishSaleRecorded(ctx, sale)

	return created(sale), nil
}

func (uc *DefaultSaleUsecase) notifyNewSale(ctx context.Context, sale *domain.Sale, attribution *Attribution) {
	notification := domain.Notification{
		Kind:      domain.NotificationNewSale,
		UserID:    sale.InfluencerID,
		Recipient: attribution.Influencer.WhatsApp,
	}
	template := ""
	if attribution.Manager != nil {
		notification.Credential = attribution.Manager.NotificationToken
		template = attribution.Manager.SaleMessageTemplate
	}
	notification.Message = message.RenderSale(template, message.SaleData{
		Name:       attribution.Influencer.Name,
		Coupon:     sale.CouponCodeUsed,
		OrderID:    sale.OrderID,
		SaleValue:  sale.SaleValue,
		Commission: sale.InfluencerCommissionEarned,
		Percentage: sale.InfluencerPercentage,
	})

	notifier.Deliver(ctx, uc.Messenger, uc.Metrics, notification, "sale_id", sale.ID)
}

func (uc *DefaultSaleUsecase) publishSaleRecorded(ctx context.Context, sale *domain.Sale) {
	if uc.Events == nil {
		return
	}
	uc.inflight.Add(1)
	go func(sale domain.Sale) {
		defer uc.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := uc.Events.PublishSaleRecorded(pubCtx, &sale); err != nil {
			slog.Error("failed to publish kafka sale event", "sale_id", sale.ID, "error", err.Error())
		}
	}(*sale)
}

func (uc *DefaultSaleUsecase) recordMalformed(ctx context.Context, input *saledto.IngestSaleInput, cause error, started time.Time) {
	slog.Warn("malformed webhook payload", "source", input.Source, "error", cause)
	uc.audit(ctx, &domain.IntakeEvent{
		Source:      input.Source,
		Outcome:     domain.IntakeMalformed,
		Reason:      cause.Error(),
		PayloadHash: webhook.PayloadHash(input.Payload),
		ReceivedAt:  started,
	})
	if uc.Metrics != nil {
		uc.Metrics.RecordMalformed(string(input.Source))
	}
	uc.recordIntakeMetrics(string(input.Source), string(domain.IntakeMalformed), started)
}

func (uc *DefaultSaleUsecase) audit(ctx context.Context, event *domain.IntakeEvent) {
	if uc.IntakeLog == nil {
		return
	}
	if err := uc.IntakeLog.LogIntake(ctx, event); err != nil {
		slog.Error("failed to log webhook intake", "source", event.Source, "order_id", event.OrderID, "error", err)
	}
}

func alreadyProcessed(sale *domain.Sale) *saledto.IngestSaleOutput {
	out := created(sale)
	out.Status = domain.IntakeAlreadyProcessed
	return out
}

func notAttributed(intake domain.SaleIntake, reason string) *saledto.IngestSaleOutput {
	return &saledto.IngestSaleOutput{
		Status:    domain.IntakeNotAttributed,
		OrderID:   intake.OrderID,
		Reason:    reason,
		SaleValue: intake.TotalValue,
	}
}

func created(sale *domain.Sale) *saledto.IngestSaleOutput {
	return &saledto.IngestSaleOutput{
		Status:               domain.IntakeCreated,
		SaleID:               sale.ID,
		OrderID:              sale.OrderID,
		InfluencerID:         sale.InfluencerID,
		ManagerID:            sale.ManagerID,
		SaleValue:            sale.SaleValue,
		InfluencerPercentage: sale.InfluencerPercentage,
		ManagerPercentage:    sale.ManagerPercentage,
		InfluencerCommission: sale.InfluencerCommissionEarned,
		ManagerCommission:    sale.ManagerCommissionEarned,
	}
}
