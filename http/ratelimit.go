package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

// DefaultUploadBurst is how many uploads a client may send back to back.
const DefaultUploadBurst = 3

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client address gets its own limiter, so one busy client cannot
// starve the others. Limiters that have refilled completely are dropped,
// since a new limiter would behave the same.
type ClientLimiter struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastSweep time.Time
	every     time.Duration
	burst     int
}

// NewClientLimiter allows each client one request per interval after an
// initial burst.
func NewClientLimiter(every time.Duration, burst int) *ClientLimiter {
	return &ClientLimiter{
		Now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	now := l.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.every {
		l.sweep(now)
		l.lastSweep = now
	}

	limiter, ok := l.limiters[client]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.limiters[client] = limiter
	}
	return limiter.AllowN(now, 1)
}

// Len returns the number of clients currently tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// sweep drops limiters with a full bucket. Caller must hold l.mu.
func (l *ClientLimiter) sweep(now time.Time) {
	for client, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, client)
		}
	}
}

// Middleware rejects requests over the client's limit with 429.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientAddr(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.every.Seconds()+0.5)))
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, ErrorResponse{Message: "Too many uploads, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr returns the host part of the remote address. RealIP has
// already replaced it with the forwarded address when present.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
