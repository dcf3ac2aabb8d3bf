// Package domain holds the error categories shared by every entity.
// Entity packages wrap these with %w so callers can match either level.
package domain

import "errors"

var (
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a unique attribute is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: the input was rejected before any state changed.
	ErrValidation = errors.New("validation error")
)
