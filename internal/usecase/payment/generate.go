package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/notifier"
	paymentdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/payment"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/message"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/validate"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

var payoutRoles = []domain.Role{domain.RoleInfluencer, domain.RoleManager}

// GenerateCommissionPayments aggregates the calculated, not yet batched sales
// of the period into one pending payment per (user, role). Payments and their
// sale memberships are written in a single call, so a run either batches every
// group or none.
func (uc *DefaultPaymentUsecase) GenerateCommissionPayments(ctx context.Context, input *paymentdto.GeneratePaymentsInput) (*paymentdto.GeneratePaymentsOutput, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, domain.NewValidationError("period", "period_start and period_end are required")
	}
	if input.PeriodEnd.Before(input.PeriodStart) {
		return nil, domain.ErrInvalidPeriod
	}
	start, end := periodBounds(input.PeriodStart, input.PeriodEnd)

	out, err := uc.batchPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	payments := out.Payments

	slog.Info("commission payments generated",
		"period_start", start.Format(time.RFC3339),
		"period_end", end.Format(time.RFC3339),
		"payments", len(payments),
		"pending_processed", out.PendingProcessed,
	)

	for _, p := range payments {
		if uc.Metrics != nil {
			uc.Metrics.RecordPaymentCreated(string(p.RoleAtPayment), p.CommissionEarned)
		}
		uc.publishPaymentCreated(ctx, p)
		if p.RoleAtPayment == domain.RoleInfluencer {
			uc.notifyReport(ctx, p)
		}
	}
	return out, nil
}

// batchPeriod runs the locked part of generation. The lock is released once
// the batches are committed, before any event or notification goes out.
func (uc *DefaultPaymentUsecase) batchPeriod(ctx context.Context, start, end time.Time) (*paymentdto.GeneratePaymentsOutput, error) {
	if uc.Locker != nil {
		ttl := uc.LockTTL
		if ttl <= 0 {
			ttl = generationLockTTL
		}
		release, err := uc.Locker.Acquire(ctx, generationLockKey, ttl)
		if err != nil {
			if errors.Is(err, domain.ErrLockNotAcquired) {
				return nil, domain.ErrGenerationInProgress
			}
			return nil, fmt.Errorf("acquire generation lock: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("failed to release generation lock", "error", err)
			}
		}()
	}

	out := &paymentdto.GeneratePaymentsOutput{
		TotalsByRole: make(map[domain.Role]*paymentdto.RoleTotals, len(payoutRoles)),
	}

	pendingCount, err := uc.SaleRepo.CountUncalculatedSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("count uncalculated sales: %w", err)
	}
	if pendingCount > 0 && uc.Pending != nil {
		processed, err := uc.Pending.ProcessPendingCommissions(ctx)
		if err != nil {
			return nil, fmt.Errorf("process pending commissions: %w", err)
		}
		out.PendingProcessed = processed.ProcessedCount
	}

	calculatedAt := uc.now()
	var payments []*domain.CommissionPayment
	for _, role := range payoutRoles {
		sales, err := uc.SaleRepo.FindUnbatchedSales(ctx, role, start, end)
		if err != nil {
			return nil, fmt.Errorf("find unbatched %s sales: %w", role, err)
		}
		batches, err := groupByPayee(sales, role, start, end, calculatedAt)
		if err != nil {
			return nil, err
		}

		totals := &paymentdto.RoleTotals{TotalSalesValue: decimal.Zero, CommissionEarned: decimal.Zero}
		for _, p := range batches {
			totals.Payments++
			totals.TotalSalesValue = totals.TotalSalesValue.Add(p.TotalSalesValue)
			totals.CommissionEarned = totals.CommissionEarned.Add(p.CommissionEarned)
		}
		out.TotalsByRole[role] = totals
		payments = append(payments, batches...)
	}

	if len(payments) > 0 {
		if err := uc.PaymentRepo.CreatePayments(ctx, payments); err != nil {
			return nil, fmt.Errorf("create payments: %w", err)
		}
	}
	out.PaymentsCreated = len(payments)
	out.Payments = payments
	return out, nil
}

// periodBounds treats an end at midnight as the whole of that day.
func periodBounds(start, end time.Time) (time.Time, time.Time) {
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end
}

// groupByPayee returns payments in a stable order: by payee, sales by date.
func groupByPayee(sales []*domain.Sale, role domain.Role, start, end, calculatedAt time.Time) ([]*domain.CommissionPayment, error) {
	byPayee := make(map[string]*domain.CommissionPayment)
	for _, sale := range sales {
		payee := sale.PayeeFor(role)
		if payee == "" {
			continue
		}
		p, ok := byPayee[payee]
		if !ok {
			id, err := newPaymentID()
			if err != nil {
				return nil, err
			}
			p = &domain.CommissionPayment{
				ID:                 id,
				UserID:             payee,
				RoleAtPayment:      role,
				TotalSalesValue:    decimal.Zero,
				CommissionEarned:   decimal.Zero,
				PaymentPeriodStart: start,
				PaymentPeriodEnd:   end,
				CalculationDate:    calculatedAt,
				Status:             domain.PaymentPending,
				CreatedAt:          calculatedAt,
				UpdatedAt:          calculatedAt,
			}
			byPayee[payee] = p
		}
		p.Include(sale)
	}

	payments := make([]*domain.CommissionPayment, 0, len(byPayee))
	for _, p := range byPayee {
		payments = append(payments, p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].UserID < payments[j].UserID })
	return payments, nil
}

func newPaymentID() (string, error) {
	generate, err := nanoid.Standard(paymentIDLength)
	if err != nil {
		return "", fmt.Errorf("payment id generator: %w", err)
	}
	return generate(), nil
}

func (uc *DefaultPaymentUsecase) notifyReport(ctx context.Context, p *domain.CommissionPayment) {
	if uc.Messenger == nil || uc.Users == nil {
		return
	}
	influencer, err := uc.Users.FindUserByID(ctx, p.UserID)
	if err != nil || influencer == nil {
		slog.Warn("payment report not sent: influencer lookup failed", "payment_id", p.ID, "user_id", p.UserID, "error", err)
		return
	}

	notification := domain.Notification{
		Kind:      domain.NotificationPaymentReport,
		UserID:    influencer.ID,
		Recipient: influencer.WhatsApp,
	}
	template := ""
	if influencer.HasManager() {
		manager, err := uc.Users.FindUserByID(ctx, influencer.ManagerID)
		if err != nil {
			slog.Warn("manager lookup failed", "user_id", influencer.ID, "manager_id", influencer.ManagerID, "error", err)
		}
		if manager != nil {
			notification.Credential = manager.NotificationToken
			template = manager.ReportMessageTemplate
		}
	}
	notification.Message = message.RenderReport(template, message.ReportData{
		Name:        influencer.Name,
		PeriodStart: p.PaymentPeriodStart,
		PeriodEnd:   p.PaymentPeriodEnd,
		TotalSales:  p.TotalSalesValue,
		Commission:  p.CommissionEarned,
		SalesCount:  p.SalesCount(),
	})

	notifier.Deliver(ctx, uc.Messenger, uc.Metrics, notification, "payment_id", p.ID)
}

func (uc *DefaultPaymentUsecase) publishPaymentCreated(ctx context.Context, p *domain.CommissionPayment) {
	if uc.Events == nil {
		return
	}
	uc.inflight.Add(1)
	go func(payment domain.CommissionPayment) {
		defer uc.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := uc.Events.PublishPaymentCreated(pubCtx, &payment); err != nil {
			slog.Error("failed to publish kafka payment event", "payment_id", payment.ID, "error", err.Error())
		}
	}(*p)
}
