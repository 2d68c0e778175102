// Command reconcile runs the missed-payment reconciliation and the asset link audit
// once, for operators and external schedulers.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"motofinance-backend/internal/adapter/repository/mysql"
	"motofinance-backend/internal/config"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/infrastructure/cache"
	"motofinance-backend/internal/infrastructure/db"
	"motofinance-backend/internal/infrastructure/logger"
	"motofinance-backend/internal/infrastructure/scheduler"
	"motofinance-backend/internal/usecase/delinquency"
	"motofinance-backend/internal/usecase/integrity"
)

func main() {
	asOfFlag := flag.String("as-of", "", "reconcile as of this date (YYYY-MM-DD, UTC); defaults to now")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zl.Sync() }()

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		t, err := time.Parse(time.DateOnly, *asOfFlag)
		if err != nil {
			zl.Fatal("invalid -as-of", zap.String("value", *asOfFlag), zap.Error(err))
		}
		asOf = t
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.WithLogger(zl, gormlogger.Warn))
	if err != nil {
		zl.Fatal("open mysql", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(context.Background(), cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	th := loan.Thresholds{AtRisk: cfg.AtRiskThreshold, Recovery: cfg.RecoveryThreshold}
	loans := mysql.NewLoanRepository(gdb)
	job := scheduler.NewReconcileJob(
		cache.NewLocker(rdb),
		delinquency.NewUsecase(loans, mysql.NewGormUoW(gdb), th, zl),
		integrity.NewUsecase(mysql.NewAssetRepository(gdb), loans, mysql.NewClientRepository(gdb), zl),
		30*time.Minute,
		zl.Named("reconcile"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := job.Run(ctx, asOf)
	if errors.Is(err, scheduler.ErrLocked) {
		zl.Warn("another reconciliation is running")
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)

	if err != nil || len(res.Audit.Violations) > 0 {
		zl.Error("reconciliation finished with problems",
			zap.Int("violations", len(res.Audit.Violations)), zap.Error(err))
		os.Exit(1)
	}
}
