// Package config holds per-class rate limit settings.
package config

import (
	"time"

	"medcalc/internal/ratelimit/models"
)

// Limit is a request budget over a sliding window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// Config maps endpoint classes to per-IP limits.
type Config struct {
	IPLimits map[models.EndpointClass]Limit
}

// DefaultConfig allows 120 dispatches and 600 catalog reads per minute per IP.
func DefaultConfig() *Config {
	return &Config{
		IPLimits: map[models.EndpointClass]Limit{
			models.ClassDispatch: {RequestsPerWindow: 120, Window: time.Minute},
			models.ClassRead:     {RequestsPerWindow: 600, Window: time.Minute},
		},
	}
}

// WithDispatchLimit returns a copy of c whose dispatch class uses the given
// budget. Non-positive values keep the existing setting.
func (c *Config) WithDispatchLimit(requests int, window time.Duration) *Config {
	out := &Config{IPLimits: make(map[models.EndpointClass]Limit, len(c.IPLimits))}
	for k, v := range c.IPLimits {
		out.IPLimits[k] = v
	}
	current := out.IPLimits[models.ClassDispatch]
	if requests > 0 {
		current.RequestsPerWindow = requests
	}
	if window > 0 {
		current.Window = window
	}
	out.IPLimits[models.ClassDispatch] = current
	return out
}

// GetIPLimit returns the limit configured for class.
func (c *Config) GetIPLimit(class models.EndpointClass) (int, time.Duration, bool) {
	l, ok := c.IPLimits[class]
	if !ok || l.RequestsPerWindow <= 0 || l.Window <= 0 {
		return 0, 0, false
	}
	return l.RequestsPerWindow, l.Window, true
}
