package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestRateLimiter_Allow tests the burst budget per IP.
func TestRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name          string
		burst         int
		requests      int
		expectedAllow int
	}{
		{"within burst", 10, 5, 5},
		{"at burst", 10, 10, 10},
		{"exceeds burst", 10, 15, 10},
		{"zero burst clamps to one", 0, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// one token per minute, so no refill happens during the test
			rl := NewRateLimiter(1, tt.burst)

			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if rl.Allow("10.0.0.1") {
					allowed++
				}
			}
			if allowed != tt.expectedAllow {
				t.Errorf("expected %d allowed, got %d", tt.expectedAllow, allowed)
			}
		})
	}
}

// TestRateLimiter_PerIP tests that budgets are independent per client.
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Error("first request from 10.0.0.1 should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request from 10.0.0.1 should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("first request from 10.0.0.2 should be allowed")
	}
	if got := rl.Visitors(); got != 2 {
		t.Errorf("expected 2 visitors, got %d", got)
	}
}

// TestRateLimit tests the middleware response.
func TestRateLimit(t *testing.T) {
	h := RateLimit(NewRateLimiter(1, 1))(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}
	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	resp := decodeEnvelope(t, w.Body)
	if resp.Error == nil || resp.Error.Code != "RATE_LIMITED" {
		t.Errorf("unexpected error envelope: %+v", resp.Error)
	}
}

// TestClientIP tests client address extraction.
func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote with port", "192.0.2.1:1234", "", "192.0.2.1"},
		{"remote without port", "192.0.2.1", "", "192.0.2.1"},
		{"forwarded chain", "10.0.0.1:1", "203.0.113.5, 10.0.0.2", "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
