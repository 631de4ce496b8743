package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourbase/tours-api/internal/api/shared"
	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/mocks"
	"github.com/tourbase/tours-api/internal/service/auth"
	"github.com/tourbase/tours-api/internal/store"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	issued := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	passwordChanged := issued.Add(time.Hour)

	freshUser := &domain.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}
	staleUser := &domain.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser, PasswordChangedAt: &passwordChanged}

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		claims         *auth.Claims
		storeUser      *domain.User
		storeErr       error
		expectedStatus int
		wantUser       bool
	}{
		{
			name:           "valid fresh token",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, IssuedAt: issued},
			storeUser:      freshUser,
			expectedStatus: http.StatusOK,
			wantUser:       true,
		},
		{
			name:           "missing auth header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no token after scheme",
			authHeader:     "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "user deleted after token issuance",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, IssuedAt: issued},
			storeErr:       store.ErrUserNotFound,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token issued before password change",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, IssuedAt: issued},
			storeUser:      staleUser,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "store failure maps to a generic 500",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, IssuedAt: issued},
			storeErr:       assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			}
			userStore := &mocks.MockUserStore{
				User: tt.storeUser,
				Err:  tt.storeErr,
			}

			mw := NewAuthMiddleware(jwtService, userStore)

			var capturedUser *domain.User
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if user, ok := shared.CurrentUser(r.Context()); ok {
					capturedUser = user
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Add("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			mw.Authenticate(nextHandler).ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.wantUser {
				require.NotNil(t, capturedUser)
				assert.Equal(t, userID, capturedUser.ID)
			} else {
				assert.Nil(t, capturedUser, "nothing may be attached to context on failure")
			}
		})
	}
}

// A token minted in the same second as the password change must stay valid.
func TestAuthMiddleware_SameSecondPasswordChange(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &domain.User{ID: userID, Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser, PasswordChangedAt: &at}

	mw := NewAuthMiddleware(
		&mocks.MockJWTService{Claims: &auth.Claims{UserID: userID, IssuedAt: at.Add(300 * time.Millisecond)}},
		&mocks.MockUserStore{User: user},
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t")
	recorder := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		userRole       domain.Role
		permitted      []domain.Role
		withUser       bool
		expectedStatus int
	}{
		{
			name:           "role in permitted set",
			userRole:       domain.RoleUser,
			permitted:      []domain.Role{domain.RoleUser},
			withUser:       true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "role outside permitted set",
			userRole:       domain.RoleUser,
			permitted:      []domain.Role{domain.RoleAdmin, domain.RoleLeadGuide},
			withUser:       true,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "lead guide allowed for admin routes",
			userRole:       domain.RoleLeadGuide,
			permitted:      []domain.Role{domain.RoleAdmin, domain.RoleLeadGuide},
			withUser:       true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no user in context",
			permitted:      []domain.Role{domain.RoleAdmin},
			withUser:       false,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := RequireRoles(tt.permitted...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/tours/abc", nil)
			if tt.withUser {
				user := &domain.User{ID: uuid.New(), Role: tt.userRole}
				req = req.WithContext(shared.WithCurrentUser(context.Background(), user))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
		})
	}
}
