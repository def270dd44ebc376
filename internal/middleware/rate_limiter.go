package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/embedhost/backend/internal/config"
)

const (
	defaultVisitorTTL = 5 * time.Minute
	gcInterval        = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client key. Idle buckets are dropped
// after ttl.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	lastGC   time.Time
	now      func() time.Time
}

// NewIPRateLimiter builds a limiter allowing cfg.Requests events per cfg.Window
// with cfg.Burst extra capacity. A zero Requests value disables limiting.
func NewIPRateLimiter(cfg config.RateLimitConfig, ttl time.Duration) *IPRateLimiter {
	window := cfg.Window
	if window <= 0 {
		window = time.Second
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = defaultVisitorTTL
	}

	limit := rate.Inf
	if cfg.Requests > 0 {
		limit = rate.Every(window / time.Duration(cfg.Requests))
	}

	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Allow reports whether key may perform one more request now.
func (l *IPRateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) >= gcInterval {
		l.gcLocked(now)
		l.lastGC = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *IPRateLimiter) gcLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

// WithNowFunc allows tests to override the time source.
func (l *IPRateLimiter) WithNowFunc(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}
