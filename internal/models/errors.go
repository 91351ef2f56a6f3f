package models

import "errors"

// Domain errors. Handlers map these to HTTP statuses; anything unrecognized
// is treated as a store failure and surfaces as a generic 500.
var (
	// ErrValidation marks a missing or malformed field in a request.
	// Wrap it with the detail: fmt.Errorf("%w: movieId is required", ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrUserNotFound        = errors.New("user not found")
	ErrInteractionNotFound = errors.New("movie not found in your list")
	ErrAlreadyOnList       = errors.New("movie already exists in your list")
	ErrEmailExists         = errors.New("email already registered")
	ErrNotWatched          = errors.New("you can only favourite movies you've watched")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
