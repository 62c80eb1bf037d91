package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cleanroom/internal/resolution/ports"
)

// CachedChecker is a read-through Redis cache in front of a checker.
// Validity verdicts are stable for a given value, so re-running a batch
// does not hammer the external capability. Keys are hashed: raw SSNs never
// reach Redis.
type CachedChecker struct {
	inner  ports.IdentityChecker
	client *redis.Client
	ttl    time.Duration
}

func NewCachedChecker(inner ports.IdentityChecker, client *redis.Client, ttl time.Duration) *CachedChecker {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedChecker{inner: inner, client: client, ttl: ttl}
}

func cacheKey(ssn string) string {
	sum := sha256.Sum256([]byte(ssn))
	return "identity:valid:" + hex.EncodeToString(sum[:])
}

// Valid checks the cache first; on miss it asks the inner checker and
// stores the verdict. Cache errors fall through to the inner checker, and
// cache write failures are ignored: the cache is an optimization, never a
// gatekeeper.
func (c *CachedChecker) Valid(ctx context.Context, ssn string) (bool, error) {
	key := cacheKey(ssn)

	// redis.Nil and transport errors both fall through to the inner
	// checker; the capability is authoritative.
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached == "1", nil
	}

	valid, err := c.inner.Valid(ctx, ssn)
	if err != nil {
		return valid, err
	}

	value := "0"
	if valid {
		value = "1"
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return valid, nil
	}
	return valid, nil
}

// Invalidate drops a cached verdict, for when the upstream source changes.
func (c *CachedChecker) Invalidate(ctx context.Context, ssn string) error {
	if err := c.client.Del(ctx, cacheKey(ssn)).Err(); err != nil {
		return fmt.Errorf("invalidate identity cache: %w", err)
	}
	return nil
}
