// Package testutil provides testing helpers for the spotdown service.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestRedisAddrEnv names the environment variable holding the address of a
// Redis instance reserved for tests.
const TestRedisAddrEnv = "TEST_REDIS_ADDR"

// SetupTestRedis creates a Redis client for integration tests. Tests are
// skipped when no test Redis address is configured or the instance is
// unreachable.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv(TestRedisAddrEnv)
	if addr == "" {
		t.Skipf("Redis not available for testing, set %s to enable", TestRedisAddrEnv)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})

	return client
}
