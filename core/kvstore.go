package core

import (
	"context"
	"time"
)

// KeyValueStore is a small string store with optionally expiring keys (ttl <= 0 means no expiry).
type KeyValueStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX sets key only if it does not exist yet and reports whether it did.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}
