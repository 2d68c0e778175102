package db

import (
	"context"
	"time"

	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/inquiry"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/domain/payment"
	"motofinance-backend/internal/domain/schedule"
	"motofinance-backend/internal/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Option func(*gorm.Config)

// WithLogger routes gorm logs to zap at the given level.
func WithLogger(l *zap.Logger, level gormlogger.LogLevel) Option {
	return func(c *gorm.Config) { c.Logger = logger.NewGormLogger(l, level) }
}

func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// OpenGormWithDialector opens, tunes the pool and pings once.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               gormlogger.Discard,
		TranslateError:       true,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(cfg)
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Check pings the pool behind gdb; used by the health endpoint.
func Check(gdb *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&inquiry.Inquiry{},
		&asset.Asset{},
		&client.Client{},
		&loan.Loan{},
		&schedule.Item{},
		&payment.Payment{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
