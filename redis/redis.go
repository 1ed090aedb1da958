package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meinhoongagan/homeconnect-pro/logger"
)

// Client is nil when REDIS_ADDR is unset; every helper then degrades to a no-op.
var Client *redis.Client

// Init connects to addr. An empty addr leaves redis disabled.
func Init(addr string) error {
	if addr == "" {
		Client = nil
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	Client = c
	logger.Log.Info("connected to redis")
	return nil
}

func Enabled() bool {
	return Client != nil
}

func Close() {
	if Client != nil {
		_ = Client.Close()
		Client = nil
	}
}
