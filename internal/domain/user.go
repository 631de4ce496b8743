package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyUserName    = errors.New("user name cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrInvalidRole      = errors.New("invalid user role")
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account. The password hash never leaves the
// server and the plaintext password only exists transiently during signup
// and password changes.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Photo             string     `json:"photo,omitempty"`
	Role              Role       `json:"role"`
	Password          string     `json:"-"` // plaintext, transient
	HashedPassword    string     `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewUser creates a User with a fresh ID, the default role, and creation
// timestamps. The caller is responsible for hashing the password before the
// user is stored.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      RoleUser,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the user's fields, returning the first violation found.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Name == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt's input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// PasswordChangedAfter reports whether the user's credentials changed after
// the given instant, typically a token's issued-at claim. Both sides are
// truncated to whole seconds because JWT timestamps carry no finer
// precision; a token minted in the same second as the change stays valid.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return t.Truncate(time.Second).Before(u.PasswordChangedAt.Truncate(time.Second))
}

// validEmail performs a minimal structural check: one @ with a dotted,
// non-empty domain. Anything stricter is the signup form's problem.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
