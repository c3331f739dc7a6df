package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !rl.Allow("key", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("key", 3, time.Minute) {
		t.Error("fourth request should be denied")
	}

	// Different key gets its own window.
	if !rl.Allow("other", 3, time.Minute) {
		t.Error("separate key should be allowed")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	if !rl.Allow("key", 1, 10*time.Millisecond) {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("key", 1, 10*time.Millisecond) {
		t.Fatal("second request within window should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("key", 1, 10*time.Millisecond) {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()
	rl.Allow("stale", 1, 5*time.Millisecond)
	rl.Allow("fresh", 1, time.Minute)

	time.Sleep(10 * time.Millisecond)
	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["stale"]; ok {
		t.Error("expired entry should be removed")
	}
	if _, ok := rl.entries["fresh"]; !ok {
		t.Error("live entry should survive cleanup")
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"remote addr only", "203.0.113.7:4321", "", "203.0.113.7"},
		{"forwarded single", "10.0.0.1:80", "198.51.100.2", "198.51.100.2"},
		{"forwarded chain", "10.0.0.1:80", "198.51.100.2, 10.0.0.1", "198.51.100.2"},
		{"no port", "203.0.113.7", "", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := RealIP(r); got != tt.want {
				t.Errorf("RealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
