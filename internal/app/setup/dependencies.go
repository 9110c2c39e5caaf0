package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.CommissionConfig
	DB           *gorm.DB
	Publisher    *kafka.DefaultKafkaPublisher
	Redis        *redis.Client
	Locker       domain.Locker
	Messenger    domain.Messenger
	Events       domain.EventPublisher
	Metrics      *metrics.CommissionMetrics
	Registry     *prometheus.Registry
	Repositories *Repositories
}

type Repositories struct {
	SaleRepo    domain.SaleRepository
	TierRepo    domain.TierRepository
	PaymentRepo domain.PaymentRepository
	Users       domain.UserDirectory
	IntakeLog   domain.IntakeEventLogger
}

func InitializeDependencies(ctx context.Context, cfg *config.CommissionConfig) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.CommissionDB.MigrationsPath); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	deps := &Dependencies{
		Config:   cfg,
		DB:       db,
		Metrics:  metrics.NewCommissionMetrics(registry),
		Registry: registry,
		Repositories: &Repositories{
			SaleRepo:    repository.NewDefaultSaleRepository(db),
			TierRepo:    repository.NewDefaultTierRepository(db),
			PaymentRepo: repository.NewDefaultPaymentRepository(db),
			Users:       repository.NewDefaultUserDirectory(db),
			IntakeLog:   logger.NewPGIntakeEventLogger(db),
		},
	}

	if cfg.KafkaService.Enabled() {
		pub, err := kafka.NewDefaultKafkaPublisher(cfg.KafkaService)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		deps.Publisher = pub
		deps.Events = kafka.NewCommissionEventPublisher(pub, cfg.KafkaService.SaleTopic, cfg.KafkaService.PaymentTopic)
	} else {
		slog.Warn("kafka not configured, domain events disabled")
	}

	locker, err := initLocker(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}
	deps.Locker = locker

	messenger, err := initMessenger(cfg, deps.Publisher)
	if err != nil {
		return nil, err
	}
	deps.Messenger = notifier.NewDispatcher(messenger, cfg.Notifications.FallbackToken)

	return deps, nil
}

func initLocker(ctx context.Context, cfg *config.CommissionConfig, deps *Dependencies) (domain.Locker, error) {
	if !cfg.Redis.Enabled {
		slog.Info("redis disabled, payment generation lock is process-local")
		return lock.NewLocalLocker(), nil
	}
	client, err := lock.Connect(ctx, cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	deps.Redis = client
	return lock.NewRedisLocker(client)
}

func initMessenger(cfg *config.CommissionConfig, pub *kafka.DefaultKafkaPublisher) (domain.Messenger, error) {
	switch cfg.Notifications.Driver {
	case "http":
		if cfg.Notifications.GatewayURL == "" {
			return nil, fmt.Errorf("notifications: http driver needs gateway_url")
		}
		return notifier.NewHTTPMessenger(cfg.Notifications.GatewayURL, cfg.Notifications.Timeout), nil
	case "kafka":
		if pub == nil {
			return nil, fmt.Errorf("notifications: kafka driver needs kafka_service")
		}
		return kafka.NewNotificationPublisher(pub, cfg.KafkaService.NotificationTopic), nil
	case "log", "":
		return notifier.NewLogMessenger(), nil
	default:
		return nil, fmt.Errorf("notifications: unknown driver %q", cfg.Notifications.Driver)
	}
}

// Close releases external connections.
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			slog.Error("kafka publisher close failed", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			slog.Error("redis close failed", "error", err)
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
