package database

import (
	"fmt"
	"time"

	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a connection for the configured driver. TranslateError
// maps driver-specific uniqueness violations to gorm.ErrDuplicatedKey so the
// repositories behave the same on sqlite and postgres.
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var db *gorm.DB
	var err error
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.ConnectionString()), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Path+"?_foreign_keys=on"), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck pings the underlying connection
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate runs automatic migrations (for development and sqlite installs;
// postgres deployments use the goose migrations in cmd/migrate)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Salesperson{},
		&domain.Company{},
		&domain.Contact{},
		&domain.Deal{},
		&domain.DealContact{},
		&domain.DealStageHistory{},
		&domain.Product{},
		&domain.Quote{},
		&domain.QuoteItem{},
		&domain.QuoteSequence{},
		&domain.MailToken{},
	)
}
