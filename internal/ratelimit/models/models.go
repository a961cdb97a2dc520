package models

import (
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassDispatch: calculator runs, single and batch.
	ClassDispatch EndpointClass = "dispatch"
	// ClassRead: catalog listing and descriptors.
	ClassRead EndpointClass = "read"
)

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassDispatch, ClassRead:
		return true
	}
	return false
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
	Degraded   bool      `json:"-"`                     // served by the in-memory fallback
}

// Denied builds a rejection that clears once the oldest counted request
// leaves the window.
func Denied(limit int, resetAt, now time.Time) *RateLimitResult {
	retry := int(resetAt.Sub(now).Seconds())
	if resetAt.Sub(now) > time.Duration(retry)*time.Second {
		retry++
	}
	if retry < 1 {
		retry = 1
	}
	return &RateLimitResult{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retry,
	}
}
