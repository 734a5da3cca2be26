package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uat/internal/user/models"
)

// Redis shares the active program list between processes.
type Redis struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

type RedisOption func(*Redis)

// WithKeyPrefix namespaces the cache key, e.g. per deployment.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.key = prefix + activeProgramsKey
	}
}

func NewRedis(client redis.Cmdable, ttl time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{client: client, key: activeProgramsKey, ttl: ttl}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context) ([]models.ProgramDefinition, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get active programs: %w", err)
	}
	programs, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return programs, true, nil
}

func (r *Redis) Set(ctx context.Context, programs []models.ProgramDefinition) error {
	raw, err := encode(programs)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set active programs: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("invalidate active programs: %w", err)
	}
	return nil
}
