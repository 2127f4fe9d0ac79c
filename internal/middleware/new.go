package middleware

import (
	"assistant-kit/config"
	"assistant-kit/pkg/log"
)

// Middleware bundles the gin middlewares of the API.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the middlewares. A disabled rate limit config yields a
// pass-through RateLimit.
func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	m := Middleware{l: l}
	if cfg.Enabled && cfg.RequestsPerMin > 0 {
		m.limiter = newRateLimiter(cfg.RequestsPerMin, cfg.Burst)
	}
	return m
}
