package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes a Redis client and verifies the connection.
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0, // default DB
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
