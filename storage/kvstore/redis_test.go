package kvstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

// openRedisStore connects to TEST_REDIS_ADDR, skipping the test when it is unset.
func openRedisStore(t *testing.T) *RedisStore {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := NewRedisClient(context.Background(), core.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisClient(): %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore(t *testing.T) {
	s := openRedisStore(t)
	ctx := context.Background()
	lock := "test:lock:" + uuid.New().String()
	token := "test:token:" + uuid.New().String()
	defer func() { _ = s.Delete(ctx, lock, token) }()

	ok, err := s.SetNX(ctx, lock, "1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("SetNX() = %v, %v; want true, nil", ok, err)
	}
	if ok, _ = s.SetNX(ctx, lock, "1", time.Minute); ok {
		t.Fatal("SetNX() on a held key = true")
	}
	if exists, _ := s.Exists(ctx, lock); !exists {
		t.Fatal("Exists() = false for a held key")
	}
	if ttl := s.client.TTL(ctx, lock).Val(); ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL(lock) = %v, want (0, 1m]", ttl)
	}

	if err = s.Delete(ctx, lock); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if ok, _ = s.SetNX(ctx, lock, "1", time.Minute); !ok {
		t.Fatal("SetNX() after Delete() = false")
	}

	// expiring key
	if err = s.Set(ctx, token, "revoked", 100*time.Millisecond); err != nil {
		t.Fatalf("Set(): %v", err)
	}
	if exists, _ := s.Exists(ctx, token); !exists {
		t.Fatal("Exists() = false right after Set()")
	}
	time.Sleep(300 * time.Millisecond)
	if exists, _ := s.Exists(ctx, token); exists {
		t.Error("Exists() = true for an expired key")
	}

	if err = s.Delete(ctx); err != nil {
		t.Errorf("Delete() without keys: %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: time.Second}))
	defer func() { _ = s.client.Close() }()
	ctx := context.Background()

	if _, err := s.SetNX(ctx, "lock", "1", time.Minute); !core.IsPersistence(err) {
		t.Errorf("SetNX() = %v, want a persistence error", err)
	}
	if _, err := s.Exists(ctx, "lock"); !core.IsPersistence(err) {
		t.Errorf("Exists() = %v, want a persistence error", err)
	}
	if err := s.Set(ctx, "lock", "1", time.Minute); !core.IsPersistence(err) {
		t.Errorf("Set() = %v, want a persistence error", err)
	}
}
