package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/app/background"
	"github.com/LavaJover/shvark-commission-service/internal/app/setup"
	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-commission-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger.InitLogger(cfg.LogConfig.LogLevel, cfg.LogConfig.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	uc := setup.InitializeUseCases(deps)

	// gRPC
	grpcServer := grpcapi.NewServer(grpcapi.NewCommissionHandler(uc.TierUsecase, uc.SaleUsecase, uc.PaymentUsecase))
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("grpc server stopped", "error", err)
		}
	}()

	// HTTP
	if cfg.Webhooks.GenericSecret == "" {
		slog.Warn("webhooks.generic_secret is empty, /webhooks/generic will reject every delivery")
	}
	router := handlers.NewRouter(handlers.Handlers{
		Webhook:  handlers.NewWebhookHandler(uc.SaleUsecase, cfg.Webhooks.GenericSecret),
		Tier:     handlers.NewTierHandler(uc.TierUsecase),
		Payment:  handlers.NewPaymentHandler(uc.PaymentUsecase),
		Gatherer: deps.Registry,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	go func() {
		slog.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "error", err)
			stop()
		}
	}()

	// Background sweep and relayed webhook intake
	var intake *kafka.DefaultKafkaSubscriber
	if cfg.KafkaService.Enabled() && cfg.KafkaService.IntakeTopic != "" {
		intake, err = kafka.NewDefaultKafkaSubscriber(cfg.KafkaService, cfg.KafkaService.IntakeTopic)
		if err != nil {
			log.Fatalf("failed to init intake consumer: %v", err)
		}
	}
	tasks := background.NewBackgroundTasks(uc.SaleUsecase, cfg.Scheduler.PendingSweepInterval, intake)
	tasks.StartAll(ctx)

	grpcServer.MarkServing()
	slog.Info("commission service started", "env", cfg.Env)

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	grpcServer.Stop()
	tasks.Wait()
	uc.Wait()
}
