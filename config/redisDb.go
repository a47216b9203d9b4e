package config

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a client for the shared token cache and pings it once.
// An empty address means no cache; both return values are nil then.
func ConnectRedis(ctx context.Context, redisAddr string) (*redis.Client, *redislock.Client, error) {
	if redisAddr == "" {
		return nil, nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: "",
		DB:       0, // use default DB
		PoolSize: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
	}
	return rdb, redislock.New(rdb), nil
}
