package ratelimit

import (
	"sync"
	"time"
)

// JudgeLimiter caps the number of judge model calls per 24h window.
// Once exhausted, scoring falls back to rule-based results until the
// window resets.
type JudgeLimiter struct {
	mu        sync.Mutex
	count     int
	max       int
	resetTime time.Time
}

func NewJudgeLimiter(maxRequests int) *JudgeLimiter {
	return &JudgeLimiter{
		max:       maxRequests,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

func (l *JudgeLimiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.count = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
}

// Allow reports whether another judge call fits in the current window.
func (l *JudgeLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkReset()
	return l.count < l.max
}

// Use consumes one request from the window.
func (l *JudgeLimiter) Use() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkReset()
	l.count++
}

func (l *JudgeLimiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkReset()
	return map[string]interface{}{
		"used":       l.count,
		"max":        l.max,
		"remaining":  l.max - l.count,
		"reset_time": l.resetTime.Format(time.RFC3339),
	}
}
