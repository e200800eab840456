package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Get returns the value stored under key, or types.ErrNotFound.
func (b *Backend) Get(key string) ([]byte, error) {
	return b.GetContext(context.Background(), key)
}

// Set stores value under key, replacing any previous value.
func (b *Backend) Set(key string, value []byte) error {
	return b.SetContext(context.Background(), key, value)
}

// Keys lists every stored key in ascending order.
func (b *Backend) Keys() ([]string, error) {
	return b.KeysContext(context.Background())
}

// GetContext is Get with a caller-supplied context.
func (b *Backend) GetContext(ctx context.Context, key string) (value []byte, err error) {
	ctx, span := b.tracer.Start(ctx, "kv.get", trace.WithAttributes(attribute.String("kv.key", key)))
	defer func() { endSpan(span, err) }()

	if key == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	err = b.db.QueryRowContext(ctx, selectKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %q: %w", key, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	span.SetAttributes(attribute.Int("kv.size", len(value)))
	return value, nil
}

// SetContext is Set with a caller-supplied context.
func (b *Backend) SetContext(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := b.tracer.Start(ctx, "kv.set", trace.WithAttributes(
		attribute.String("kv.key", key),
		attribute.Int("kv.size", len(value)),
	))
	defer func() { endSpan(span, err) }()

	if key == "" {
		return types.ErrInvalidID
	}
	if value == nil {
		value = []byte{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDetached
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = b.db.ExecContext(ctx, upsertKV, key, value, now); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// KeysContext is Keys with a caller-supplied context.
func (b *Backend) KeysContext(ctx context.Context) (keys []string, err error) {
	ctx, span := b.tracer.Start(ctx, "kv.keys")
	defer func() { endSpan(span, err) }()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx, selectKeys)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// endSpan records err on the span, if any, and ends it. A missing key is an
// expected outcome and does not mark the span as failed.
func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
