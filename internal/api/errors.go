package api

import (
	"errors"
	"net/http"

	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/service/auth"
	"github.com/tourbase/tours-api/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP status
// codes. Unknown errors map to 500 so internals never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrEmptyTourName,
		domain.ErrEmptySummary,
		domain.ErrEmptyCoverImage,
		domain.ErrInvalidDuration,
		domain.ErrInvalidGroupSize,
		domain.ErrInvalidDifficulty,
		domain.ErrInvalidPrice,
		domain.ErrInvalidDiscount,
		domain.ErrInvalidRating,
		domain.ErrEmptyUserName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrInvalidRole,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
