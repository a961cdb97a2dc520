package models

// ErrorRateLimitExceeded is the error code of every 429 body.
const ErrorRateLimitExceeded = "rate_limit_exceeded"

// RateLimitExceededResponse is the 429 body. RetryAfter repeats the
// Retry-After header in seconds.
type RateLimitExceededResponse struct {
	Error      string        `json:"error"`
	Class      EndpointClass `json:"class"`
	Message    string        `json:"message"`
	RetryAfter int           `json:"retry_after"`
}
