package media

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	entry   Entry
	expires time.Time
}

type cacheKey struct {
	user  string
	media string
}

// CachingProvider wraps another Provider with a TTL-based in-memory cache.
// Lookup failures are not cached.
type CachingProvider struct {
	base Provider
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	items map[cacheKey]cacheEntry
}

// NewCachingProvider returns a Provider that caches lookups for the provided TTL.
func NewCachingProvider(base Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{
		base:  base,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[cacheKey]cacheEntry),
	}
}

// Lookup returns a cached entry when available, otherwise it delegates to the
// underlying provider and stores the result.
func (c *CachingProvider) Lookup(ctx context.Context, userSlug, mediaSlug string) (Entry, error) {
	if c == nil || c.base == nil {
		return Entry{}, ErrProviderUnavailable
	}

	key := cacheKey{user: userSlug, media: mediaSlug}
	now := c.now()

	c.mu.RLock()
	cached, ok := c.items[key]
	c.mu.RUnlock()
	if ok && now.Before(cached.expires) {
		return cached.entry, nil
	}

	entry, err := c.base.Lookup(ctx, userSlug, mediaSlug)
	if err != nil {
		return Entry{}, err
	}

	c.mu.Lock()
	c.items[key] = cacheEntry{entry: entry, expires: now.Add(c.ttl)}
	c.gcLocked(now)
	c.mu.Unlock()

	return entry, nil
}

func (c *CachingProvider) gcLocked(now time.Time) {
	for key, item := range c.items {
		if !now.Before(item.expires) {
			delete(c.items, key)
		}
	}
}
