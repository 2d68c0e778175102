package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	httpadp "motofinance-backend/internal/adapter/http"
	"motofinance-backend/internal/adapter/middleware"
	"motofinance-backend/internal/adapter/repository/mysql"
	"motofinance-backend/internal/adapter/sequence"
	"motofinance-backend/internal/config"
	"motofinance-backend/internal/domain/access"
	"motofinance-backend/internal/domain/loan"
	"motofinance-backend/internal/infrastructure/cache"
	"motofinance-backend/internal/infrastructure/db"
	"motofinance-backend/internal/infrastructure/logger"
	"motofinance-backend/internal/infrastructure/scheduler"
	"motofinance-backend/internal/usecase/delinquency"
	ucInquiry "motofinance-backend/internal/usecase/inquiry"
	"motofinance-backend/internal/usecase/integrity"
	"motofinance-backend/internal/usecase/origination"
	ucPayment "motofinance-backend/internal/usecase/payment"
)

func main() {
	// .env is optional; real deployments inject the environment
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zl.Sync() }()

	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLevel = gormlogger.Info
	}
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.WithLogger(zl, gormLevel))
	if err != nil {
		zl.Fatal("open mysql", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			zl.Fatal("migrate", zap.Error(err))
		}
		zl.Info("schema migrated")
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
	seq := sequence.NewRedisGenerator(rdb, zl.Named("sequence"))
	tx := mysql.NewGormUoW(gdb)
	loans := mysql.NewLoanRepository(gdb)

	inquiries := ucInquiry.NewUsecase(mysql.NewInquiryRepository(gdb), tx, zl)
	orig := origination.NewUsecase(loans, mysql.NewScheduleRepository(gdb), tx, seq, th, zl)
	payments := ucPayment.NewUsecase(loans, mysql.NewPaymentRepository(gdb), tx, seq, zl)
	recovery := delinquency.NewUsecase(loans, tx, th, zl)
	audit := integrity.NewUsecase(mysql.NewAssetRepository(gdb), loans, mysql.NewClientRepository(gdb), zl)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator(httpadp.WithPhoneRegion(cfg.PhoneRegion))
	e.Use(echomw.RequestID(), logger.EchoRequestLogger(zl), echomw.Recover())

	health := httpadp.NewHandler(map[string]httpadp.Check{
		"mysql": db.Check(gdb),
		"redis": cache.Check(rdb),
	})

	httpadp.Register(e, httpadp.Handlers{
		Health:    health,
		Inquiries: httpadp.NewInquiryHandler(inquiries),
		Loans:     httpadp.NewLoanHandler(orig),
		Payments:  httpadp.NewPaymentHandler(payments),
		Recovery:  httpadp.NewRecoveryHandler(recovery),
	}, access.DefaultPolicy(),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zl),
	)

	var trigger *scheduler.CronTrigger
	if cfg.ReconcileEnabled {
		job := scheduler.NewReconcileJob(cache.NewLocker(rdb), recovery, audit, 30*time.Minute, zl.Named("reconcile"))
		trigger = scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			DailyHour:     cfg.ReconcileHour,
			CheckInterval: cfg.ReconcileCheckInterval,
		}, job, zl.Named("cron"))
		if err := trigger.Start(context.Background()); err != nil {
			zl.Fatal("start cron trigger", zap.Error(err))
		}
	}

	go func() {
		addr := ":" + cfg.AppPort
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if trigger != nil {
		if err := trigger.Stop(ctx); err != nil {
			zl.Warn("stop cron trigger", zap.Error(err))
		}
	}
	if err := e.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
