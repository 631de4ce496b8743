// Package api contains the HTTP handlers, request/response models, and
// error mapping for the tours API.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tourbase/tours-api/internal/api/shared"
	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/service/auth"
	"github.com/tourbase/tours-api/internal/store"
)

// AuthHandler serves signup, login, and password change requests.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(userStore store.UserStore, jwtService auth.JWTService, hasher auth.PasswordHasher, verifier auth.PasswordVerifier, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", "auth_handler")),
		timeFunc:   time.Now,
	}
}

// Signup handles POST /api/v1/users/signup. It registers a new account with
// the default role and immediately issues a token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), err.Error())
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create account", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email address is already in use")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithToken(w, r, http.StatusCreated, token, map[string]any{"user": NewUserResponse(user)})
}

// Login handles POST /api/v1/users/login. Unknown email and wrong password
// produce the same response so the endpoint cannot be used to probe for
// accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to log in", err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", slog.String("user_id", user.ID.String()))
	shared.RespondWithToken(w, r, http.StatusOK, token, nil)
}

// UpdatePassword handles PATCH /api/v1/users/password. The caller must be
// authenticated and must prove knowledge of the current password; on success
// a fresh token is issued because the change invalidates all earlier ones.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.CurrentUser(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not logged in. Please log in to get access.")
		return
	}

	var req UpdatePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.CurrentPassword); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Your current password is wrong")
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update password", err)
		return
	}

	if err := h.userStore.UpdatePassword(r.Context(), user.ID, hashed, h.timeFunc().UTC()); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "The user belonging to this token no longer exists.")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update password", err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	h.logger.InfoContext(r.Context(), "password updated", slog.String("user_id", user.ID.String()))
	shared.RespondWithToken(w, r, http.StatusOK, token, nil)
}
