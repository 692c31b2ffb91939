// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

const (
	// ExpiryDuration is how long an idle network keeps its bucket.
	ExpiryDuration = time.Hour
	// CleanupInterval is the time between sweeps of idle buckets.
	CleanupInterval = 5 * time.Minute

	defaultIPv4Prefix = 32
	defaultIPv6Prefix = 64
)

// excludedPaths are never rate limited.
var excludedPaths = []string{"/healthz"}

var timeNow = time.Now

type bucket struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// Limiter holds one token bucket per client network.
type Limiter struct {
	rate       rate.Limit
	burst      int
	ipv4Prefix int
	ipv6Prefix int

	buckets sync.Map // network string -> *bucket
}

// New returns a Limiter allowing perSecond sustained requests and burst at once.
func New(perSecond, burst int) *Limiter {
	return &Limiter{
		rate:       rate.Limit(perSecond),
		burst:      burst,
		ipv4Prefix: defaultIPv4Prefix,
		ipv6Prefix: defaultIPv6Prefix,
	}
}

// Evaluate is the limiter middleware.
//
// Requests over the limit get 429 Too Many Requests with Retry-After.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	for _, prefix := range excludedPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			next.ServeHTTP(w, r)

			return
		}
	}

	network := l.clientKey(r)
	b := l.bucketFor(network)

	b.mu.Lock()
	now := timeNow()
	b.lastAccess = now
	reservation := b.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)

	if delay > 0 {
		reservation.CancelAt(now)
	}

	remaining := int(math.Max(0, b.limiter.TokensAt(now)))
	b.mu.Unlock()

	headers := w.Header()
	headers.Set(HeaderRateLimitLimit, strconv.Itoa(l.burst))
	headers.Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

	if delay > 0 {
		retry := strconv.Itoa(int(math.Ceil(delay.Seconds())))
		headers.Set(HeaderRateLimitReset, retry)
		headers.Set("Retry-After", retry)

		log.Warn().
			Str("network", network).
			Msg("Rate limit exceeded")

		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

func (l *Limiter) bucketFor(network string) *bucket {
	if v, ok := l.buckets.Load(network); ok {
		return v.(*bucket)
	}

	v, _ := l.buckets.LoadOrStore(network, &bucket{
		limiter:    rate.NewLimiter(l.rate, l.burst),
		lastAccess: timeNow(),
	})

	return v.(*bucket)
}

// Cleanup drops buckets idle for longer than ExpiryDuration and reports how many went.
func (l *Limiter) Cleanup() int {
	cutoff := timeNow().Add(-ExpiryDuration)
	removed := 0

	l.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)

		b.mu.Lock()
		idle := b.lastAccess.Before(cutoff)
		b.mu.Unlock()

		if idle {
			l.buckets.Delete(key)
			removed++
		}

		return true
	})

	return removed
}

// Run sweeps idle buckets every CleanupInterval until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			removed := l.Cleanup()

			log.Debug().
				Int("removed", removed).
				Dur("dur", time.Since(start)).
				Msg("Limiter cleanup")
		}
	}
}
