package gen

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// RateLimiter reads the generation service's rate limit headers and pauses
// requests when the token budget is nearly drained.
type RateLimiter struct {
	remainingHeader string
	resetHeader     string

	remaining int
	resetAt   time.Time

	debug bool
}

// NewRateLimiter using the provided header names.
func NewRateLimiter(remainingHeader, resetHeader string) RateLimiter {
	rl := RateLimiter{
		remainingHeader: strings.ToLower(remainingHeader),
		resetHeader:     strings.ToLower(resetHeader),
	}
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_RATE_LIMIT")) {
		rl.debug = true
	}
	return rl
}

// UpdateFromHeaders extracts rate limit information from a response,
// discarding any stale values first. Missing or malformed headers return
// an error.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) error {
	if r.remainingHeader == "" || r.resetHeader == "" {
		return nil
	}
	r.remaining = 0
	r.resetAt = time.Time{}

	remStr := h.Get(r.remainingHeader)
	if remStr == "" {
		return fmt.Errorf("missing header '%s'", r.remainingHeader)
	}
	rem, err := strconv.Atoi(remStr)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.remainingHeader, err)
	}
	r.remaining = rem

	resetStr := h.Get(r.resetHeader)
	if resetStr == "" {
		return fmt.Errorf("missing header '%s'", r.resetHeader)
	}
	if dur, err := time.ParseDuration(resetStr); err == nil {
		r.resetAt = time.Now().Add(dur)
	} else if sec, err := strconv.ParseFloat(resetStr, 64); err == nil {
		r.resetAt = time.Now().Add(time.Duration(sec * float64(time.Second)))
	} else {
		return fmt.Errorf("failed to parse %s: '%v'", r.resetHeader, resetStr)
	}
	return nil
}

// lowTokenWatermark is the remaining token count under which requests wait
// for the limit window to reset.
const lowTokenWatermark = 50

// WaitIfNeeded pauses until the limit window resets when the token budget
// is nearly drained. Returns early on context cancel.
func (r *RateLimiter) WaitIfNeeded(ctx context.Context) {
	if r.remainingHeader == "" {
		return
	}
	if r.remaining > lowTokenWatermark || r.resetAt.IsZero() {
		return
	}
	waitFor := time.Until(r.resetAt)
	if waitFor <= 0 {
		return
	}
	ancli.PrintWarn(fmt.Sprintf("rate limit reached, waiting %v\n", waitFor.Round(time.Second)))
	timer := time.NewTimer(waitFor)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
