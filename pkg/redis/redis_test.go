package redis

import (
	"context"
	"testing"
	"time"

	"github.com/CartagenesDev/cartagenes-finacias/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")

	allowed, remaining, err := limiter.Allow(context.Background(), BrapiRateLimit)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !allowed {
		t.Error("Expected request to be allowed when Redis disabled")
	}
	if remaining != BrapiRateLimit.Limit {
		t.Errorf("Expected remaining = %d, got %d", BrapiRateLimit.Limit, remaining)
	}

	if err := limiter.Wait(context.Background(), BrapiRateLimit); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	if err := cache.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var result string
	found, err := cache.Get(ctx, "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestSnapshotKey(t *testing.T) {
	if got := SnapshotKey("PETR4,VALE3"); got != "market:snapshot:PETR4,VALE3" {
		t.Errorf("SnapshotKey() = %q", got)
	}

	c := NewCache(disabledClient(t), "cartagenes")
	if got := c.key(SnapshotKey("x")); got != "cartagenes:cache:market:snapshot:x" {
		t.Errorf("key() = %q", got)
	}
}
