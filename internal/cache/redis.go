package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"academiq/config"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	mu     sync.Mutex
)

// GetClient returns the shared Redis client, connecting on first use.
// Returns an error when no Redis address is configured; callers treat the
// cache as optional.
func GetClient() (*redis.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return client, nil
	}

	redisCfg := config.Cfg.Redis
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis is not configured")
	}

	c := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	client = c
	return client, nil
}

// AnswerTTL returns the configured lifetime of cached answers.
func AnswerTTL() time.Duration {
	minutes := config.Cfg.Redis.AnswerTTL
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
