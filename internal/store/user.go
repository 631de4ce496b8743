package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tourbase/tours-api/internal/domain"
)

// UserStore defines the persistence operations for user accounts.
type UserStore interface {
	// Create saves a new user. The user must already carry a hashed
	// password; plaintext never reaches the store. Returns ErrEmailExists
	// when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, including the password hash
	// for credential checks. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword replaces the user's password hash and records the
	// change time, which invalidates tokens issued earlier. Returns
	// ErrUserNotFound if absent.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string, changedAt time.Time) error
}
