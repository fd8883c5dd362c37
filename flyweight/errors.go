package flyweight

import (
	"errors"

	"github.com/goliatone/go-flyweight/cache"
)

var (
	// ErrDuplicateID is returned by Pool.Create when the id is taken.
	ErrDuplicateID = errors.New("flyweight: duplicate id")

	// ErrNotFound is returned for ids the pool does not hold.
	ErrNotFound = errors.New("flyweight: not found")

	// ErrInvalidField is returned when an intrinsic field is not a primitive value.
	ErrInvalidField = cache.ErrInvalidField
)

// EntityError carries the pool operation and id that failed.
type EntityError struct {
	Op  string
	ID  string
	Err error
}

func (e *EntityError) Error() string {
	return "flyweight: " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
