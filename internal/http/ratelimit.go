package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// loginLimiter throttles credential endpoints per client IP so password
// guessing stays slow. Fixed one-minute windows are enough here; the
// bcrypt cost does the rest.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*window

	attemptsPerMinute int
	stop              chan struct{}
	stopOnce          sync.Once
}

type window struct {
	start    time.Time
	attempts int
}

const defaultAuthAttemptsPerMinute = 20

func newLoginLimiter(attemptsPerMinute int) *loginLimiter {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = defaultAuthAttemptsPerMinute
	}
	l := &loginLimiter{
		clients:           make(map[string]*window),
		attemptsPerMinute: attemptsPerMinute,
		stop:              make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *loginLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[clientIP]
	if !ok || now.Sub(w.start) > time.Minute {
		l.clients[clientIP] = &window{start: now, attempts: 1}
		return true
	}

	w.attempts++
	return w.attempts <= l.attemptsPerMinute
}

func (l *loginLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for ip, w := range l.clients {
				if w.start.Before(cutoff) {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

func (l *loginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// limitAuth rejects clients that hammer register/login.
func (s *Server) limitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many attempts, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
