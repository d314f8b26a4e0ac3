package gen

import (
	"net/http"
	"testing"
	"time"
)

func TestRateLimiter_DurationReset(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "10")
	h.Set("reset", "2s")
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.remaining != 10 {
		t.Errorf("expected remaining 10, got %v", rl.remaining)
	}
	if d := time.Until(rl.resetAt); d < time.Second || d > 3*time.Second {
		t.Errorf("expected ~2s reset, got %v", d)
	}
}

func TestRateLimiter_SecondsReset(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "5")
	h.Set("reset", "3.5")
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := time.Until(rl.resetAt); d < 2*time.Second || d > 4*time.Second {
		t.Errorf("expected ~3.5s reset, got %v", d)
	}
}

func TestRateLimiter_MissingHeader(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "1")
	if err := rl.UpdateFromHeaders(h); err == nil {
		t.Fatal("expected error")
	}
}

func TestRateLimiter_NoHeadersConfigured(t *testing.T) {
	rl := RateLimiter{}
	if err := rl.UpdateFromHeaders(http.Header{}); err != nil {
		t.Fatalf("unconfigured limiter should be a noop, got: %v", err)
	}
}
