//go:build integration

package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/migrate"
	pg "github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
)

// NewPostgresDB starts a disposable PostgreSQL, applies the migrations and
// creates the users table this service normally only reads.
func NewPostgresDB(ctx context.Context, t *testing.T) *gorm.DB {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("commission"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	db, err := pg.InitDB(config.CommissionDB{Dsn: dsn, MaxOpenConns: 10})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := migrate.RunMigrations(db, migrationsDir()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		t.Fatalf("failed to create users table: %v", err)
	}
	return db
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
