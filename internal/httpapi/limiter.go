package httpapi

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// signupLimiter allows at most max signups per key within a sliding window.
// Keys whose attempts have all expired are dropped, at the latest by the
// sweep that runs once per window.
type signupLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	entries   map[string][]time.Time
	lastSweep time.Time
}

func newSignupLimiter(max int, window time.Duration) *signupLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &signupLimiter{
		window:  window,
		max:     max,
		entries: make(map[string][]time.Time),
	}
}

func (l *signupLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	kept := pruneBefore(l.entries[key], cutoff)
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	l.entries[key] = append(kept, now)
	return true
}

func (l *signupLimiter) sweep(cutoff time.Time) {
	for key, ts := range l.entries {
		kept := pruneBefore(ts, cutoff)
		if len(kept) == 0 {
			delete(l.entries, key)
			continue
		}
		l.entries[key] = kept
	}
}

func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// clientIP returns the peer address of r. X-Forwarded-For is only honoured
// when trustProxy is set, since clients can put anything in it.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
