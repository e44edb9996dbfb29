package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/schoolops-api/pkg/config"
)

// keyspace prefixes every key this service writes so a shared Redis can be flushed per service.
const keyspace = "schoolops"

// NewRedis connects to Redis and checks it answers within cfg.Timeout.
// The account cache is optional, so callers treat an error as "run without cache".
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, client.Options().DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", client.Options().Addr, err)
	}
	return client, nil
}

func options(cfg config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}
	return opts
}

// AccountKey is the cache key of an account detail payload.
func AccountKey(accountID int64) string {
	return fmt.Sprintf("%s:accounts:%d", keyspace, accountID)
}

// AccountPattern matches every cached payload of an account.
func AccountPattern(accountID int64) string {
	return AccountKey(accountID) + "*"
}
