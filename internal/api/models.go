package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourbase/tours-api/internal/domain"
)

// SignupRequest is the payload for the signup endpoint.
type SignupRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the payload for the password change endpoint.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Password        string `json:"password"        validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// CreateTourRequest is the payload for creating a tour.
type CreateTourRequest struct {
	Name          string      `json:"name"          validate:"required"`
	Duration      int         `json:"duration"      validate:"required,gt=0"`
	MaxGroupSize  int         `json:"maxGroupSize"  validate:"required,gt=0"`
	Difficulty    string      `json:"difficulty"    validate:"required,oneof=easy medium difficult"`
	Price         float64     `json:"price"         validate:"required,gt=0"`
	PriceDiscount float64     `json:"priceDiscount" validate:"omitempty,gt=0,ltfield=Price"`
	Summary       string      `json:"summary"       validate:"required"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover"    validate:"required"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
}

// UpdateTourRequest is the payload for partially updating a tour. Absent
// fields keep their stored values.
type UpdateTourRequest struct {
	Name          *string      `json:"name"`
	Duration      *int         `json:"duration"`
	MaxGroupSize  *int         `json:"maxGroupSize"`
	Difficulty    *string      `json:"difficulty"`
	Price         *float64     `json:"price"`
	PriceDiscount *float64     `json:"priceDiscount"`
	Summary       *string      `json:"summary"`
	Description   *string      `json:"description"`
	ImageCover    *string      `json:"imageCover"`
	Images        *[]string    `json:"images"`
	StartDates    *[]time.Time `json:"startDates"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Photo string      `json:"photo,omitempty"`
	Role  domain.Role `json:"role"`
}

// NewUserResponse strips a user down to its public fields.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Role:  user.Role,
	}
}
