package server

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	defaultRateLimit  = 30          // requests per window per client
	defaultRateWindow = time.Minute // window length
)

// rateLimiter applies a fixed-window per-client limit. Match requests fan
// out to the embedding backend, so an unthrottled client can exhaust the
// upstream quota well before it saturates this process.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
	limit   int
	window  time.Duration
	done    chan struct{}
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		windows: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the client may proceed and the seconds until its
// window resets when it may not.
func (rl *rateLimiter) Allow(clientID string) (bool, int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.windows[clientID]
	if !ok || now.After(cw.resetAt) {
		rl.windows[clientID] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}

	if cw.count >= rl.limit {
		return false, int(time.Until(cw.resetAt).Seconds()) + 1
	}
	cw.count++
	return true, 0
}

// Stop terminates the background cleanup goroutine.
func (rl *rateLimiter) Stop() {
	close(rl.done)
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for id, cw := range rl.windows {
				if now.After(cw.resetAt) {
					delete(rl.windows, id)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// withRateLimit rejects clients exceeding the per-window request budget.
// Health checks are exempt.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, retryAfter := s.limiter.Allow(clientID(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			log.Printf("[rate-limit] %s throttled on %s", r.RemoteAddr, r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller by IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
