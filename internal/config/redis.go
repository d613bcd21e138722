package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedis اتصال به Redis را راه‌اندازی و با Ping بررسی می‌کند
func NewRedis(ctx context.Context, s *Settings) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", s.RedisAddr, err)
	}
	return client, nil
}
