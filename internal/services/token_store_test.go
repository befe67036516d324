package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenCache(t *testing.T) {
	now := fixedNow()
	tc := NewTokenCache(10 * time.Minute)
	tc.now = func() time.Time { return now }

	tc.StoreToken("short", "u1", now.Add(time.Minute))
	tc.StoreToken("long", "u2", now.Add(time.Hour))

	uid, ok := tc.GetUserID("short")
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)

	now = now.Add(2 * time.Minute)
	_, ok = tc.GetUserID("short")
	assert.False(t, ok, "token past its expiry")
	_, ok = tc.GetUserID("long")
	assert.True(t, ok)

	now = now.Add(10 * time.Minute)
	_, ok = tc.GetUserID("long")
	assert.False(t, ok, "token past the cache ttl")

	tc.cleanup()
	assert.Empty(t, tc.tokens)
}

func TestTokenCacheDelete(t *testing.T) {
	tc := NewTokenCache(time.Hour)
	expires := time.Now().Add(time.Minute)
	tc.StoreToken("a", "u1", expires)
	tc.StoreToken("b", "u1", expires)
	tc.StoreToken("c", "u2", expires)

	tc.DeleteToken("c")
	_, ok := tc.GetUserID("c")
	assert.False(t, ok)

	tc.DeleteUser("u1")
	assert.Empty(t, tc.tokens)
}

func TestTokenCacheRunStopsWithContext(t *testing.T) {
	tc := NewTokenCache(time.Hour)
	tc.StoreToken("old", "u1", time.Now().Add(-time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		tc.mu.RLock()
		defer tc.mu.RUnlock()
		return len(tc.tokens) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
