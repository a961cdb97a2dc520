package testutil

import (
	"net/http"

	"medcalc/pkg/requestcontext"
)

// WithClientIP sets the client IP the metadata middleware would resolve.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientIP(req.Context(), ip))
}

// WithRequestID sets the correlation ID the request ID middleware would assign.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
