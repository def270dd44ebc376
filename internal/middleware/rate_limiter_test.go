package middleware

import (
	"testing"
	"time"

	"github.com/embedhost/backend/internal/config"
)

func TestIPRateLimiterAllow(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 2}, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.WithNowFunc(func() time.Time { return now })

	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatal("expected burst to be allowed")
	}
	if limiter.Allow("a") {
		t.Fatal("expected third request to be limited")
	}
	if !limiter.Allow("b") {
		t.Fatal("expected separate key to have its own budget")
	}

	now = now.Add(time.Minute)
	if !limiter.Allow("a") {
		t.Fatal("expected token to be replenished after window")
	}
}

func TestIPRateLimiterUnlimited(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{}, 0)

	for i := 0; i < 100; i++ {
		if !limiter.Allow("a") {
			t.Fatalf("expected request %d to be allowed", i)
		}
	}
}

func TestIPRateLimiterExpiresIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{Requests: 10, Window: time.Second, Burst: 1}, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.WithNowFunc(func() time.Time { return now })

	limiter.Allow("a")
	limiter.Allow("b")
	if got := limiter.Len(); got != 2 {
		t.Fatalf("expected 2 visitors got %d", got)
	}

	now = now.Add(2 * time.Minute)
	limiter.Allow("c")
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected idle visitors to be dropped, got %d", got)
	}
}
