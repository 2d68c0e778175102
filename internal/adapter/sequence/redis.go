package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"motofinance-backend/pkg/id"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// counters outlive their day so late writers never restart at 1
const counterTTL = 48 * time.Hour

// RedisGenerator issues PREFIX-YYYYMMDD-NNNNNN numbers from a per-day Redis counter.
type RedisGenerator struct {
	rdb *redis.Client
	log *zap.Logger
	now func() time.Time
}

func NewRedisGenerator(rdb *redis.Client, log *zap.Logger) *RedisGenerator {
	return &RedisGenerator{rdb: rdb, log: log, now: time.Now}
}

func (g *RedisGenerator) Next(ctx context.Context, prefix string) (string, error) {
	day := g.now().UTC().Format("20060102")
	key := "seq:" + strings.ToLower(prefix) + ":" + day

	n, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		// the unique index on the number column still guards collisions
		fallback := fmt.Sprintf("%s-%s-R%s", prefix, day, strings.ToUpper(id.NewID32()[:10]))
		g.log.Warn("sequence counter unavailable, using random number",
			zap.String("prefix", prefix), zap.String("number", fallback), zap.Error(err))
		return fallback, nil
	}
	if n == 1 {
		_ = g.rdb.Expire(ctx, key, counterTTL).Err()
	}
	return fmt.Sprintf("%s-%s-%06d", prefix, day, n), nil
}
