package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter manages a token-bucket limiter per principal.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
}

// NewRateLimiter creates a limiter allowing requestsPerMin requests per
// minute per principal with the given burst capacity.
func NewRateLimiter(requestsPerMin, burst int) *RateLimiter {
	m := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go m.cleanupRoutine(10 * time.Minute)
	return m
}

func (m *RateLimiter) limiterFor(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = limiter
	}
	m.lastSeen[key] = time.Now()
	return limiter
}

func (m *RateLimiter) cleanupRoutine(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-every)
			m.mu.Lock()
			for key, seen := range m.lastSeen {
				if seen.Before(cutoff) {
					delete(m.limiters, key)
					delete(m.lastSeen, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Stop terminates the cleanup goroutine.
func (m *RateLimiter) Stop() {
	close(m.done)
}

// RateLimit rejects requests exceeding the per-principal budget.
func RateLimit(m *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}

		if !m.limiterFor(principal).Allow() {
			c.Header("Retry-After", strconv.Itoa(1))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limited",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
