package scheduler

import (
	"context"
	"errors"
	"time"

	"motofinance-backend/internal/usecase/delinquency"
	"motofinance-backend/internal/usecase/integrity"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockKey = "lock:reconcile"

// ErrLocked is returned when another replica holds the reconciliation lock.
var ErrLocked = errors.New("reconciliation already running")

type Reconciler interface {
	ReconcileMissedPayments(ctx context.Context, asOf time.Time) (delinquency.ReconcileReport, error)
}

type Auditor interface {
	CheckAssetLinks(ctx context.Context) (integrity.Report, error)
}

// Locker is satisfied by *redislock.Client.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

type RunResult struct {
	RunID     string                      `json:"run_id"`
	Reconcile delinquency.ReconcileReport `json:"reconcile"`
	Audit     integrity.Report            `json:"audit"`
}

// ReconcileJob runs the missed-payment reconciliation followed by the asset link audit
// under a cluster-wide lock.
type ReconcileJob struct {
	locker     Locker
	reconciler Reconciler
	auditor    Auditor
	lockTTL    time.Duration
	logger     *zap.Logger
}

func NewReconcileJob(locker Locker, reconciler Reconciler, auditor Auditor, lockTTL time.Duration, logger *zap.Logger) *ReconcileJob {
	return &ReconcileJob{
		locker:     locker,
		reconciler: reconciler,
		auditor:    auditor,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

func (j *ReconcileJob) Run(ctx context.Context, asOf time.Time) (RunResult, error) {
	res := RunResult{RunID: uuid.NewString()}
	log := j.logger.With(zap.String("run_id", res.RunID))

	lock, err := j.locker.Obtain(ctx, lockKey, j.lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		log.Info("reconciliation lock held elsewhere, skipping")
		return res, ErrLocked
	}
	if err != nil {
		log.Error("obtain reconciliation lock", zap.Error(err))
		return res, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			log.Warn("release reconciliation lock", zap.Error(err))
		}
	}()

	log.Info("reconciliation started", zap.Time("as_of", asOf))
	rep, rerr := j.reconciler.ReconcileMissedPayments(ctx, asOf)
	res.Reconcile = rep
	if rerr != nil {
		log.Error("missed payment reconciliation had failures", zap.Error(rerr))
	}

	audit, aerr := j.auditor.CheckAssetLinks(ctx)
	res.Audit = audit
	if aerr != nil {
		log.Error("asset link audit failed", zap.Error(aerr))
	}

	log.Info("reconciliation finished",
		zap.Int("loans_updated", rep.Updated),
		zap.Int("missed_added", rep.MissedAdded),
		zap.Int("violations", len(audit.Violations)))
	return res, errors.Join(rerr, aerr)
}
