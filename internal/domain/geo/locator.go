package geo

import (
	"context"
	"errors"
)

var (
	ErrLocationDenied      = errors.New("location denied")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrLocationTimeout     = errors.New("location timed out")
)

// Locator resolves the user's current position. Implementations may block
// for a long time; callers bound the wait themselves.
type Locator interface {
	Locate(ctx context.Context) (Point, error)
}
