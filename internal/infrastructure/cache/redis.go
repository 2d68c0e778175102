package cache

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// bounds the initial ping; zero means 5s
	DialTimeout time.Duration
}

// OpenRedis connects and pings once; the client is closed again if the ping fails.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	timeout := o.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	r := redis.NewClient(&redis.Options{
		Addr:        o.Addr,
		Password:    o.Password,
		DB:          o.DB,
		DialTimeout: timeout,
	})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// Check reports whether rdb answers a ping; used by the health endpoint.
func Check(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}

// NewLocker returns a distributed lock client sharing rdb's pool.
func NewLocker(rdb *redis.Client) *redislock.Client {
	return redislock.New(rdb)
}
