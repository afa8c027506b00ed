package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientBucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// MemoryLimiter keeps per-identity token buckets in process memory. It is a
// single-process approximation of the shared Redis window, used for local
// development and tests. Idle entries are evicted by a background loop.
type MemoryLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*clientBucket

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemoryLimiter allows requests per window per identity, refilled
// continuously at requests/window.
func NewMemoryLimiter(requests int64, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   int(requests),
		window:  window,
		buckets: make(map[string]*clientBucket),
		stopCh:  make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

func (l *MemoryLimiter) Admit(_ context.Context, identity string) (Result, error) {
	now := time.Now()
	lim := l.bucket(identity, now)

	reservation := lim.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		// over quota: hand back the future token so repeat offenders are not
		// pushed arbitrarily far past the window
		reservation.CancelAt(now)
		return Result{Allowed: false, Remaining: 0, ResetAt: now.Add(delay)}, nil
	}

	return Result{
		Allowed:   true,
		Remaining: int64(lim.TokensAt(now)),
		ResetAt:   now.Add(l.window),
	}, nil
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *MemoryLimiter) bucket(identity string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[identity] = b
	}
	b.lastAccess = now
	return b.limiter
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	ttl := 2 * l.window
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for identity, b := range l.buckets {
		if now.Sub(b.lastAccess) > ttl {
			delete(l.buckets, identity)
		}
	}
}
