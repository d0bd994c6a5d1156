package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hepworks/nllfit/pkg/adapters/redis"
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/hepworks/nllfit/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	store := newTestStore(t)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	store := newTestStore(t, redis.WithPrefix("other:"))
	ctx := context.Background()

	res := &domain.FitResult{NLL: 1, Policy: "wall", CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, "a", res); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("expected [a], got %v", ids)
	}
}
