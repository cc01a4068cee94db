package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/signroom-backend/pkg/ctxutil"
)

const (
	exhaustedBody = `{"error":{"code":"resource-exhausted","message":"too many requests"}}`
	bucketIdleTTL = 10 * time.Minute
)

// RateLimiter is a per-client token bucket limiter. Buckets are keyed by
// scope and client IP so the public and company budgets never share tokens.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter starts a limiter that evicts idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.evictLoop(cleanupInterval)
	return rl
}

// Stop terminates the eviction goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit admits at most perMinute requests per client IP within scope,
// refilling continuously. perMinute <= 0 disables the limit.
func (rl *RateLimiter) Limit(scope string, perMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ctxutil.ClientIPFromCtx(r.Context())
			if ip == "" {
				ip = remoteIP(r.RemoteAddr)
			}

			wait, ok := rl.take(scope+"|"+ip, perMinute)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(exhaustedBody))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take consumes one token for key. When the bucket is empty it reports how
// long until the next token becomes available.
func (rl *RateLimiter) take(key string, perMinute int) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		capacity := float64(perMinute)
		b = &bucket{tokens: capacity, capacity: capacity, perSec: capacity / 60, seen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(b.capacity, b.tokens+now.Sub(b.seen).Seconds()*b.perSec)
	b.seen = now

	if b.tokens < 1 {
		missing := (1 - b.tokens) / b.perSec
		return time.Duration(missing * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.seen) > bucketIdleTTL {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}
