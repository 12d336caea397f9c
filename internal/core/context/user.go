// Package context carries request-scoped identity and tracing values.
// Imported as appctx to avoid clashing with the standard library.
package context

import "context"

// UserContext is the authenticated caller, populated from the JWT
// claims by the auth middleware.
type UserContext struct {
	UserID  string
	Name    string
	Email   string
	Roles   []string
	IsAdmin bool
}

type userContextKey struct{}

// WithUser attaches user to ctx.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns the authenticated caller, or nil outside an
// authenticated request.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the caller's id, or "" when unauthenticated.
// Audit enrichment relies on the empty-string fallback.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}
