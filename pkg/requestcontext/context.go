// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// This package defines context keys and getter/setter functions for values that are
// typically set by middleware but consumed by services. By keeping this package free
// of net/http dependencies, services can import only what they need without pulling
// in HTTP-related code.
//
// Usage in services (read values):
//
//	adminID := requestcontext.AdminSubject(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithAdminSubject(ctx, subject)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	adminSubjectKey struct{}
	requestIDKey    struct{}
	requestTimeKey  struct{}
	clientKey       struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyAdminSubject = adminSubjectKey{}
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyRequestTime  = requestTimeKey{}
	ContextKeyClient       = clientKey{}
)

// AdminSubject retrieves the authenticated administrative identity from the
// context. Returns "" when the request is unauthenticated.
func AdminSubject(ctx context.Context) string {
	if subject, ok := ctx.Value(ContextKeyAdminSubject).(string); ok {
		return subject
	}
	return ""
}

// WithAdminSubject injects an administrative identity into the context.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyAdminSubject, subject)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Client retrieves the caller's client description (browser and platform)
// from the context. Returns "" when no middleware recorded one.
func Client(ctx context.Context) string {
	if client, ok := ctx.Value(ContextKeyClient).(string); ok {
		return client
	}
	return ""
}

// WithClient injects a client description into the context.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ContextKeyClient, client)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers and tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
