package usecase

import "errors"

// Sentinels returned by the services and the session. Callers wrap them with
// context and transports map them with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
