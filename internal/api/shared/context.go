// Package shared holds the request/response plumbing used by every API
// handler: context keys, JSON decoding, and the response envelope.
package shared

import (
	"context"

	"github.com/tourbase/tours-api/internal/domain"
)

// ContextKey is the private type for request context keys owned by this API.
type ContextKey string

// CurrentUserContextKey is the context key under which the authentication
// middleware stores the resolved user.
const CurrentUserContextKey ContextKey = "currentUser"

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, CurrentUserContextKey, user)
}

// CurrentUser extracts the authenticated user from the context.
// Returns the user and a boolean indicating whether one was attached.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(CurrentUserContextKey).(*domain.User)
	return user, ok
}
