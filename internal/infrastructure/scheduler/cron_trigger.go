package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type CronTriggerConfig struct {
	// UTC hour from which the daily run may start
	DailyHour     int
	CheckInterval time.Duration
}

func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		DailyHour:     1,
		CheckInterval: time.Minute,
	}
}

type Runner interface {
	Run(ctx context.Context, asOf time.Time) (RunResult, error)
}

// CronTrigger fires the runner once per UTC day, on the first tick at or after DailyHour.
// A missed hour (restart, downtime) is caught up on the next tick.
type CronTrigger struct {
	config CronTriggerConfig
	runner Runner
	logger *zap.Logger
	now    func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

func NewCronTrigger(config CronTriggerConfig, runner Runner, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		config: config,
		runner: runner,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("cron trigger started",
		zap.Int("daily_hour", c.config.DailyHour),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger reports whether a run was attempted.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	today := now.Format("2006-01-02")

	if now.Hour() < c.config.DailyHour {
		return false
	}
	c.mu.Lock()
	if c.lastRunDate == today {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = today
	c.mu.Unlock()

	_, err := c.runner.Run(ctx, now)
	switch {
	case errors.Is(err, ErrLocked):
		// another replica owns today's run
	case err != nil:
		c.logger.Error("daily reconciliation failed", zap.String("date", today), zap.Error(err))
	}
	return true
}
