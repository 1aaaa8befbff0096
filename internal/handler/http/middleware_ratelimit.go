package http

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
)

// RateLimiter is the per-address login abuse guard: a fixed window of
// configurable length, at most limit attempts per window. Counting is
// per source address, before any credential inspection happens.
//
// Safe for concurrent use. Stale windows are evicted by [Cleanup], run
// periodically by the background worker.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*attemptWindow
}

type attemptWindow struct {
	start time.Time
	count int
}

func NewRateLimiter(cfg config.RateLimit) *RateLimiter {
	return &RateLimiter{
		limit:   cfg.LoginLimit,
		window:  cfg.LoginWindow,
		windows: make(map[string]*attemptWindow),
	}
}

// Allow records one attempt for the address and reports whether it is
// within the limit. When the limit is exceeded it returns how long the
// caller must wait before the window resets.
func (l *RateLimiter) Allow(addr string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.windows[addr]
	if !ok || now.Sub(current.start) >= l.window {
		l.windows[addr] = &attemptWindow{start: now, count: 1}
		return true, 0
	}

	current.count++
	if current.count > l.limit {
		return false, current.start.Add(l.window).Sub(now)
	}
	return true, 0
}

// Cleanup evicts windows that ended before now and returns how many were
// removed.
func (l *RateLimiter) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed int
	for addr, window := range l.windows {
		if now.Sub(window.start) >= l.window {
			delete(l.windows, addr)
			removed++
		}
	}
	return removed
}

// withRateLimit rejects login attempts from an address that exhausted its
// window, with 429 and a Retry-After hint.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		addr := clientAddr(r)
		allowed, retryAfter := h.limiter.Allow(addr, time.Now())
		if !allowed {
			retryAfterSeconds := int(math.Ceil(retryAfter.Seconds()))
			if retryAfterSeconds < 1 {
				retryAfterSeconds = 1
			}
			log.Warn().
				Str("addr", addr).
				Int("retry_after_seconds", retryAfterSeconds).
				Msg("login attempt rate limited")
			writeGateFailure(w, codeRateLimited, http.StatusTooManyRequests, retryAfterSeconds)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr resolves the source address the limiter counts against.
// Proxy headers are consulted first so deployments behind a CDN or load
// balancer do not collapse every caller onto one address.
func clientAddr(r *http.Request) string {
	if addr := r.Header.Get("CF-Connecting-IP"); addr != "" {
		return addr
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
