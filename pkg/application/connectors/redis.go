package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"gifts_buyer/pkg/logx"
)

const redisPingTimeout = 5 * time.Second

// Redis lazily opens one client and checks it with a ping.
type Redis struct {
	value          *redis.Client
	initErr        error
	Username       string
	Password       string
	Address        string
	DatabaseNumber int
	PoolSize       int
	init           sync.Once
}

func (r *Redis) Client(ctx context.Context) (*redis.Client, error) {
	r.init.Do(func() {
		r.value = redis.NewClient(&redis.Options{
			//nolint:exhaustruct
			Network:  "tcp",
			Addr:     r.Address,
			Username: r.Username,
			Password: r.Password,
			DB:       r.DatabaseNumber,
			PoolSize: r.PoolSize,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()

		if err := r.value.Ping(pingCtx).Err(); err != nil {
			r.initErr = fmt.Errorf("redis ping %s: %w", r.Address, err)
			return
		}

		logger(ctx).Info(
			"redis connected",
			slog.String(logx.FieldAddress, r.Address),
			slog.Int("database", r.DatabaseNumber),
		)
	})

	return r.value, r.initErr
}

func (r *Redis) Close(ctx context.Context) {
	if r.value == nil {
		return
	}

	if err := r.value.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"redis disconnected",
		slog.String(logx.FieldAddress, r.Address),
		slog.Int("database", r.DatabaseNumber),
	)
}
