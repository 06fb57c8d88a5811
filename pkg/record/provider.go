package record

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Provider looks up the record stored under key.
type Provider interface {
	Lookup(ctx context.Context, key string) (binder.Record, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, key string) (binder.Record, error)

// Lookup calls fn(ctx, key).
func (fn ProviderFunc) Lookup(ctx context.Context, key string) (binder.Record, error) {
	return fn(ctx, key)
}

// Static serves records from an in-memory map.
type Static map[string]binder.Record

// Lookup implements Provider. Unknown keys return (nil, nil).
func (s Static) Lookup(ctx context.Context, key string) (binder.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record, ok := s[key]
	if !ok {
		return nil, nil
	}
	return cloneRecord(record), nil
}

func cloneRecord(src binder.Record) binder.Record {
	if src == nil {
		return nil
	}
	out := make(binder.Record, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
