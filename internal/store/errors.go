package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific variants below wrap it so callers can match either.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrTourNotFound indicates that the requested tour does not exist.
	ErrTourNotFound = fmt.Errorf("%w: tour", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrTourNameExists indicates that a tour with the given name already
	// exists.
	ErrTourNameExists = fmt.Errorf("%w: tour name", ErrDuplicate)
)
