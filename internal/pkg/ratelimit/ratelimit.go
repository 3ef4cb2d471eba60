package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result reports whether a request may proceed and, if not, when to retry.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter gates requests per key within a rolling window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// MemoryLimiter is a sliding-window limiter backed by process memory.
// Suitable for single-instance deployments and tests.
type MemoryLimiter struct {
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	mu       sync.Mutex
}

func NewMemory(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	var valid []time.Time
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.limit {
		oldest := valid[0]
		for _, t := range valid {
			if t.Before(oldest) {
				oldest = t
			}
		}
		return Result{Allowed: false, RetryAfter: time.Until(oldest.Add(l.window))}, nil
	}

	l.requests[key] = append(valid, now)
	return Result{Allowed: true}, nil
}

// Reset clears the window for a key.
func (l *MemoryLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.requests, key)
}

// Cleanup drops keys whose entries have all aged out of the window.
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	for key, times := range l.requests {
		var valid []time.Time
		for _, t := range times {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}
		if len(valid) == 0 {
			delete(l.requests, key)
		} else {
			l.requests[key] = valid
		}
	}
}

// StartCleanup reaps expired keys in the background for the life of the
// process. Without it every distinct key ever seen stays resident.
func (l *MemoryLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			l.Cleanup()
		}
	}()
}
