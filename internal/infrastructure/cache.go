package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/architeacher/inventory/internal/config"
	appLogger "github.com/architeacher/inventory/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 3 * time.Second

type KeydbClient struct {
	client *redis.Client
	logger appLogger.Logger
}

func NewKeyDBClient(config config.Cache, logger appLogger.Logger) *KeydbClient {
	opts := &redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           int(config.DB),
		PoolSize:     int(config.PoolSize),
		MinIdleConns: int(config.MinIdleConns),
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
		MaxRetries:   int(config.MaxRetries),
	}

	return &KeydbClient{
		client: redis.NewClient(opts),
		logger: logger,
	}
}

func (c *KeydbClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *KeydbClient) Close() error {
	return c.client.Close()
}

// ReplaceList atomically swaps the list stored at key for values.
// An empty values slice leaves the key deleted.
func (c *KeydbClient) ReplaceList(ctx context.Context, key string, values []string) error {
	startTime := time.Now()

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)

		if len(values) > 0 {
			args := make([]any, len(values))
			for i, value := range values {
				args[i] = value
			}

			pipe.RPush(ctx, key, args...)
		}

		return nil
	})

	c.logger.Debug().
		Str("key", key).
		Int("length", len(values)).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Bool("success", err == nil).
		Msg("keydb replace list operation")

	if err != nil {
		return fmt.Errorf("replacing list %s: %w", key, err)
	}

	return nil
}

// ListRange returns every element of the list stored at key, or nothing when the key is absent.
func (c *KeydbClient) ListRange(ctx context.Context, key string) ([]string, error) {
	startTime := time.Now()

	values, err := c.client.LRange(ctx, key, 0, -1).Result()

	c.logger.Debug().
		Str("key", key).
		Int("length", len(values)).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Bool("success", err == nil).
		Msg("keydb list range operation")

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("key", key).
			Msg("keydb list range operation failed")

		return nil, fmt.Errorf("reading list %s: %w", key, err)
	}

	return values, nil
}

// IsHealthy checks if the cache is available.
func (c *KeydbClient) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	return c.Ping(ctx) == nil
}
