package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.CommissionConfig) *gorm.DB {
	db, err := InitDB(cfg.CommissionDB)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	return db
}

// InitDB opens the pool with error translation enabled so unique violations
// surface as gorm.ErrDuplicatedKey.
func InitDB(cfg config.CommissionDB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
