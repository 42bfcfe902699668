package storage

import (
	"context"
	"testing"
	"time"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

func TestOpenMemory(t *testing.T) {
	repos, err := Open(&core.Config{StorageDriver: core.StorageMemory})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if repos.DB != nil || repos.Users == nil || repos.Enrollments == nil || repos.Submissions == nil ||
		repos.Meetings == nil || repos.Assignments == nil {
		t.Errorf("Open() = %+v", repos)
	}
	if err = repos.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(&core.Config{StorageDriver: "mongo"}); err == nil {
		t.Error("Open() error = nil, want unknown driver")
	}
}

func TestOpenKeyValueStoreWithoutRedis(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenKeyValueStore(ctx, core.RedisConfig{})
	if err != nil {
		t.Fatalf("OpenKeyValueStore() failed: %v", err)
	}
	defer kv.Close()

	ok, err := kv.SetNX(ctx, "k", "v", time.Minute)
	if err != nil || !ok {
		t.Errorf("SetNX() = %v, %v; want true, nil", ok, err)
	}
	ok, _ = kv.SetNX(ctx, "k", "v", time.Minute)
	if ok {
		t.Error("SetNX() = true on an existing key")
	}
}
