package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, id uuid.UUID, hashedPassword string, changedAt time.Time) error

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

// UpdatePassword implements the store.UserStore interface
func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string, changedAt time.Time) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hashedPassword, changedAt)
	}
	return m.Err
}
