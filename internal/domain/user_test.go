package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("Ada Lovelace", "Ada@Example.COM", "correct-horse")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "ada@example.com", user.Email, "email is normalized to lower case")
		assert.Equal(t, RoleUser, user.Role)
		assert.Nil(t, user.PasswordChangedAt)
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"empty name", "", "a@b.co", "long-enough-pw", ErrEmptyUserName},
		{"empty email", "Ada", "", "long-enough-pw", ErrEmptyEmail},
		{"email without domain dot", "Ada", "ada@example", "long-enough-pw", ErrInvalidEmail},
		{"email without local part", "Ada", "@example.com", "long-enough-pw", ErrInvalidEmail},
		{"short password", "Ada", "a@b.co", "short", ErrPasswordTooShort},
		{"empty password", "Ada", "a@b.co", "", ErrEmptyPassword},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUser(tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, role.Valid(), "role %q", role)
	}
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_PasswordChangedAfter(t *testing.T) {
	t.Parallel()

	changed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("never changed", func(t *testing.T) {
		t.Parallel()

		u := &User{}
		assert.False(t, u.PasswordChangedAfter(time.Now()))
	})

	t.Run("token issued before the change is stale", func(t *testing.T) {
		t.Parallel()

		u := &User{PasswordChangedAt: &changed}
		assert.True(t, u.PasswordChangedAfter(changed.Add(-time.Hour)))
	})

	t.Run("token issued after the change is fresh", func(t *testing.T) {
		t.Parallel()

		u := &User{PasswordChangedAt: &changed}
		assert.False(t, u.PasswordChangedAfter(changed.Add(time.Hour)))
	})

	t.Run("same second counts as fresh", func(t *testing.T) {
		t.Parallel()

		u := &User{PasswordChangedAt: &changed}
		assert.False(t, u.PasswordChangedAfter(changed.Add(500*time.Millisecond)))
	})
}
