package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignupLimiterPerKey(t *testing.T) {
	l := newSignupLimiter(1, time.Minute)
	now := time.Now()

	if !l.Allow("ip:a", now) {
		t.Fatalf("first attempt should pass")
	}
	if l.Allow("ip:a", now.Add(time.Second)) {
		t.Fatalf("second attempt within window should fail")
	}
	if !l.Allow("ip:b", now.Add(time.Second)) {
		t.Fatalf("other key should pass")
	}
	if !l.Allow("ip:a", now.Add(61*time.Second)) {
		t.Fatalf("attempt after window should pass")
	}
}

func TestSignupLimiterDropsExpiredKeys(t *testing.T) {
	l := newSignupLimiter(1, time.Minute)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10000; i++ {
		l.Allow(fmt.Sprintf("ip:10.0.%d.%d", i/256, i%256), now)
	}
	if got := len(l.entries); got != 10000 {
		t.Fatalf("entries before expiry: got %d", got)
	}

	l.Allow("ip:late", now.Add(time.Hour))
	if got := len(l.entries); got != 1 {
		t.Fatalf("entries after expiry: got %d want 1", got)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:1234"
	if got := clientIP(req, false); got != "198.51.100.2" {
		t.Fatalf("remote addr: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	if got := clientIP(req, false); got != "198.51.100.2" {
		t.Fatalf("untrusted forwarded header: got %q", got)
	}
	if got := clientIP(req, true); got != "203.0.113.9" {
		t.Fatalf("trusted forwarded header: got %q", got)
	}
}
