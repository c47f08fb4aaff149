package digest

import (
	"context"
	"os"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// defaultSettle is how old an inode change must be before its digest is cached. A write
// landing in the same clock tick as the stat would otherwise leave the change time as is.
const defaultSettle = time.Second

type cachedDigest struct {
	info    os.FileInfo
	changed time.Time
	digest  string
}

// CachedEngine remembers digests per path and only re-hashes a file when its identity,
// size, modification time or inode change time moved. Without a change time the file is
// always re-hashed. Fresh computations are throttled by a token bucket.
type CachedEngine struct {
	engine  *Engine
	cache   *cache.Cache[string, cachedDigest]
	limiter *rate.Limiter
	settle  time.Duration
	now     func() time.Time
}

// NewCachedEngine wraps engine with an LRU of cacheSize entries. cacheSize <= 0 disables
// caching and maxPerSecond <= 0 disables throttling.
func NewCachedEngine(ctx context.Context, engine *Engine, cacheSize int, maxPerSecond float64) *CachedEngine {
	c := &CachedEngine{
		engine:  engine,
		limiter: rate.NewLimiter(rate.Inf, 0),
		settle:  defaultSettle,
		now:     time.Now,
	}
	if cacheSize > 0 {
		c.cache = cache.NewContext(ctx, cache.AsLRU[string, cachedDigest](lru.WithCapacity(cacheSize)))
	}
	if maxPerSecond > 0 {
		burst := int(maxPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(maxPerSecond), burst)
	}
	return c
}

func (c *CachedEngine) Digest(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.forget(path)
		return "", &Failure{Reason: PathUnreadable, Path: path, Err: errors.WithStack(err)}
	}
	changed, hasStamp := changeStamp(path)
	if c.cache != nil && hasStamp {
		if hit, ok := c.cache.Get(path); ok && unchanged(hit, info, changed) {
			return hit.digest, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &Failure{Reason: ReadInterrupted, Path: path, Err: errors.Wrap(err, "wait for digest budget")}
	}
	sum, err := c.engine.File(ctx, path)
	if err != nil {
		c.forget(path)
		return "", err
	}
	if c.cache != nil && hasStamp && c.now().Sub(changed) >= c.settle {
		c.cache.Set(path, cachedDigest{info: info, changed: changed, digest: sum})
	} else {
		c.forget(path)
	}
	return sum, nil
}

func (c *CachedEngine) forget(path string) {
	if c.cache != nil {
		c.cache.Delete(path)
	}
}

func unchanged(hit cachedDigest, cur os.FileInfo, changed time.Time) bool {
	return os.SameFile(hit.info, cur) &&
		hit.info.Size() == cur.Size() &&
		hit.info.ModTime().Equal(cur.ModTime()) &&
		hit.changed.Equal(changed)
}
