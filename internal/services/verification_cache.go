package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// MemoryVerificationCache implements domain.VerificationCache with a
// process-local map. A restart invalidates all outstanding codes, which is
// acceptable for short-lived codes; deployments needing a shared store swap
// in RedisVerificationCache without touching callers.
type MemoryVerificationCache struct {
	mu      sync.Mutex
	entries map[string]codeEntry
	ttl     time.Duration
	now     func() time.Time
}

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// NewMemoryVerificationCache creates an in-memory cache with the given code TTL.
func NewMemoryVerificationCache(ttl time.Duration) *MemoryVerificationCache {
	return &MemoryVerificationCache{
		entries: make(map[string]codeEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a fresh 6-digit code for identifier, overwriting any
// prior entry. The caller is responsible for delivery.
func (c *MemoryVerificationCache) Issue(_ context.Context, identifier string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[identifier] = codeEntry{code: code, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return code, nil
}

// Verify consumes the entry on an exact match. An absent or expired entry
// is a miss; a mismatch leaves the entry intact so the user may retry
// until expiry.
func (c *MemoryVerificationCache) Verify(_ context.Context, identifier, code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[identifier]
	if !ok {
		return false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, identifier)
		return false
	}
	if entry.code != code {
		return false
	}

	delete(c.entries, identifier)
	return true
}

// Discard unconditionally evicts the entry for identifier.
func (c *MemoryVerificationCache) Discard(_ context.Context, identifier string) {
	c.mu.Lock()
	delete(c.entries, identifier)
	c.mu.Unlock()
}

// generateCode returns a uniformly random six-digit code (100000-999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

var _ domain.VerificationCache = (*MemoryVerificationCache)(nil)
