package services

import (
	"context"
	"sync"
	"time"
)

type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time
}

// TokenCache remembers verified ID tokens so that repeated requests with the
// same token skip signature verification.
type TokenCache struct {
	tokens map[string]*TokenInfo // token -> TokenInfo
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
}

// NewTokenCache creates a cache keeping tokens for at most ttl
func NewTokenCache(ttl time.Duration) *TokenCache {
	return &TokenCache{
		tokens: make(map[string]*TokenInfo),
		ttl:    ttl,
		now:    time.Now,
	}
}

// StoreToken caches token for userID until the earlier of expiresAt and the cache TTL
func (tc *TokenCache) StoreToken(token, userID string, expiresAt time.Time) {
	if limit := tc.now().Add(tc.ttl); expiresAt.After(limit) {
		expiresAt = limit
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.tokens[token] = &TokenInfo{
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
}

// GetUserID retrieves the user ID associated with a token
func (tc *TokenCache) GetUserID(token string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	info, exists := tc.tokens[token]
	if !exists {
		return "", false
	}
	if tc.now().After(info.ExpiresAt) {
		return "", false
	}
	return info.UserID, true
}

// DeleteToken removes a token from the cache
func (tc *TokenCache) DeleteToken(token string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	delete(tc.tokens, token)
}

// DeleteUser removes every token of a user
func (tc *TokenCache) DeleteUser(userID string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for token, info := range tc.tokens {
		if info.UserID == userID {
			delete(tc.tokens, token)
		}
	}
}

// Run removes expired tokens every interval until ctx is done
func (tc *TokenCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tc.cleanup()
		}
	}
}

func (tc *TokenCache) cleanup() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	now := tc.now()
	for token, info := range tc.tokens {
		if now.After(info.ExpiresAt) {
			delete(tc.tokens, token)
		}
	}
}
