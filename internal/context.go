package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// Principal is the authenticated identity carried through the request
// context. It is a projection of the user record, enough for ownership
// and role checks without another lookup.
type Principal struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// IsManager reports whether the principal holds the manager role. Roles
// are a flat two-variant check with no hierarchy.
func (p *Principal) IsManager() bool {
	return p.Role == "manager"
}

// ContextWithUser stores the authenticated principal in the request context.
func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}

// UserFromContext returns the principal placed by the auth middleware.
func UserFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
