// Package middleware provides the authentication and authorization gate
// protected routes run behind.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tourbase/tours-api/internal/api/shared"
	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/service/auth"
	"github.com/tourbase/tours-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes. Verification and
// the user lookup both run on the request's own context, so concurrent
// requests authenticate independently.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves it to a live user, and rejects tokens issued before the user's
// last password change. On success the user is attached to the request
// context; on any failure nothing is attached and the pipeline stops with
// a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"You are not logged in. Please log in to get access.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Invalid authorization format")
			return
		}
		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"Your token has expired. Please log in again.")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"Invalid token. Please log in again.")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		// Tokens can outlive their account; a deleted user must not keep
		// access.
		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"The user belonging to this token no longer exists.")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Authentication error", err)
			return
		}

		// A password change invalidates every token issued before it,
		// without a revocation list.
		if user.PasswordChangedAfter(claims.IssuedAt) {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Password was recently changed. Please log in again.")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithCurrentUser(r.Context(), user)))
	})
}

// RequireRoles authorizes the already-authenticated user against a fixed
// set of permitted roles. It must run after Authenticate; a request that
// somehow reaches it without a resolved user is rejected outright.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	permitted := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		permitted[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.CurrentUser(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"You are not logged in. Please log in to get access.")
				return
			}

			if _, ok := permitted[user.Role]; !ok {
				shared.RespondWithError(w, r, http.StatusForbidden,
					"You do not have permission to perform this action.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
