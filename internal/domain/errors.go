package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by setters when a value falls outside its
// legal domain. The receiver is left unchanged.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
