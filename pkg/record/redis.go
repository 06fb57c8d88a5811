package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Redis reads records stored as hashes, one hash per lookup key.
type Redis struct {
	client redis.Cmdable
	prefix string
}

var _ Provider = (*Redis)(nil)

// NewRedis wraps a go-redis client. prefix is prepended to every lookup key
// (for example "subscription:").
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Lookup implements Provider using HGETALL. A missing or empty hash is no
// data.
func (r *Redis) Lookup(ctx context.Context, key string) (binder.Record, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("record: redis client is nil")
	}
	values, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("record: redis hgetall %s%s: %w", r.prefix, key, err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	out := make(binder.Record, len(values))
	for field, value := range values {
		out[field] = value
	}
	return out, nil
}

// Store writes record as a hash under key, stringifying values the way the
// binder would. Existing fields not present in record are kept.
func (r *Redis) Store(ctx context.Context, key string, record binder.Record) error {
	if r == nil || r.client == nil {
		return errors.New("record: redis client is nil")
	}
	if len(record) == 0 {
		return nil
	}
	fields := make(map[string]any, len(record))
	for field, value := range record {
		fields[field] = binder.Stringify(value)
	}
	if err := r.client.HSet(ctx, r.prefix+key, fields).Err(); err != nil {
		return fmt.Errorf("record: redis hset %s%s: %w", r.prefix, key, err)
	}
	return nil
}
