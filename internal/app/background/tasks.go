package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/delivery/consumer"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
)

type BackgroundTasks struct {
	SaleUsecase   sale.SaleUsecase
	SweepInterval time.Duration
	// Intake is nil when no intake topic is configured.
	Intake *kafka.DefaultKafkaSubscriber

	wg sync.WaitGroup
}

func NewBackgroundTasks(saleUC sale.SaleUsecase, sweepInterval time.Duration, intake *kafka.DefaultKafkaSubscriber) *BackgroundTasks {
	return &BackgroundTasks{
		SaleUsecase:   saleUC,
		SweepInterval: sweepInterval,
		Intake:        intake,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.SweepInterval > 0 {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startPendingSweep(ctx)
		}()
	}
	if bt.Intake != nil {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startIntakeConsumer(ctx)
		}()
	}
}

// Wait returns once every task has observed ctx cancellation.
func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) startPendingSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bt.SaleUsecase.ProcessPendingCommissions(ctx); err != nil && ctx.Err() == nil {
				slog.Error("pending commission sweep failed", "error", err)
			}
		}
	}
}

func (bt *BackgroundTasks) startIntakeConsumer(ctx context.Context) {
	defer func() {
		if err := bt.Intake.Close(); err != nil {
			slog.Error("intake consumer close failed", "error", err)
		}
	}()
	handler := consumer.NewIntakeHandler(bt.SaleUsecase)
	if err := bt.Intake.Run(ctx, handler.Handle); err != nil {
		slog.Error("intake consumer stopped", "error", err)
	}
}
