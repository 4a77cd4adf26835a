package kvstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis is the durable Store backed by a Redis instance.
type Redis struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedis(opt *redis.Options, prefix string, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: redis.NewClient(opt), prefix: prefix, logger: logger}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("kvstore miss", "key", key)
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("kvstore get error", "key", key, "error", err)
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		r.logger.Error("kvstore set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("kvstore set", "key", key)
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("kvstore delete error", "key", key, "error", err)
		return err
	}
	return nil
}

// Ping verifies connectivity at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ Store = (*Redis)(nil)
