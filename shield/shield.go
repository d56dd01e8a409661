// Package shield provides the HTTP middleware stack for the conversion API:
// security headers, per-IP rate limiting, request tracing, and HEAD handling.
//
// Usage:
//
//	rl := shield.NewRateLimiter(120, time.Minute, "/healthz")
//	rl.StartGC(done)
//	for _, mw := range shield.APIStack(rl) {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// GetLogger retrieves the per-request logger from the context.
// Returns slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// APIStack returns the standard middleware stack for the conversion API.
// Ordered: HeadToGet → SecurityHeaders → TraceID → rate limiter.
// Pass a nil limiter to skip rate limiting.
func APIStack(rl *RateLimiter) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		TraceID,
	}
	if rl != nil {
		stack = append(stack, rl.Middleware)
	}
	return stack
}
