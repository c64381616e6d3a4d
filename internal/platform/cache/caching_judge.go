// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"logo_finder/internal/feature/logofinder/usecase"
)

// CachingJudge decorates a LogoJudge with Redis caching. Oracle responses
// are cached by image digest, so re-running a batch over the same sites
// does not spend oracle calls on images already judged.
type CachingJudge struct {
	inner     usecase.LogoJudge
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingJudgeがLogoJudgeを実装していることをコンパイル時に検証します。
var _ usecase.LogoJudge = (*CachingJudge)(nil)

// NewCachingJudge decorates a LogoJudge with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "verdicts".
func NewCachingJudge(rdb *redis.Client, ttl time.Duration, inner usecase.LogoJudge, namespace string) *CachingJudge {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "verdicts"
	}
	return &CachingJudge{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Judge returns a cached oracle response when one exists for the image,
// falling back to the inner judge otherwise.
func (c *CachingJudge) Judge(ctx context.Context, imageData []byte, prompt string) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Judge(ctx, imageData, prompt)
	}

	key := c.cacheKey(imageData)

	// 1) Check cache
	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil && raw != "" {
		return raw, nil
	}

	// 2) Fallback to the oracle
	raw, err := c.inner.Judge(ctx, imageData, prompt)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()

	return raw, nil
}

// cacheKey generates a cache key from the image content digest.
// The prompt is excluded on purpose: it embeds the site URL, and the
// same image referenced from several pages should hit the same entry.
func (c *CachingJudge) cacheKey(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return fmt.Sprintf("%s:%s", c.namespace, hex.EncodeToString(sum[:]))
}
