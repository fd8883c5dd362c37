package form

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRule  = errors.New("form: unknown rule")
	ErrRuleArgument = errors.New("form: invalid rule argument")
)

// FieldError ties a failed rule to the field path, dot separated from the
// root's children down.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
