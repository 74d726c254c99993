package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// issueLimiterStore holds per-IP token bucket limiters with stale cleanup.
type issueLimiterStore struct {
	limiters sync.Map // map[string]*issueLimiterEntry (IP -> limiter)
	rps      float64
	burst    int
}

type issueLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// IssueRateLimitMiddleware enforces per-IP rate limiting on the token
// issuance endpoint. Each client IP gets an independent token bucket, so a
// misbehaving scheduler client cannot starve the others.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket
// is empty.
func IssueRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &issueLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Drop limiters for idle IPs so the map stays bounded.
	go store.cleanupStale(context.Background(), 5*time.Minute)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("issue rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many token requests from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for an IP address.
func (s *issueLimiterStore) getLimiter(ip string) *rate.Limiter {
	if val, ok := s.limiters.Load(ip); ok {
		entry := val.(*issueLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	s.limiters.Store(ip, &issueLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	})
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed in the last hour.
func (s *issueLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			s.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*issueLimiterEntry)
				entry.mu.Lock()
				stale := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if stale {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
