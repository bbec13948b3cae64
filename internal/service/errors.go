package service

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrDuplicateWeek   = errors.New("timesheet already exists for that week")
	ErrTooManyRows     = errors.New("too many timesheet rows")
	ErrUnbalanced      = errors.New("timesheet does not balance")
	ErrSubmitted       = errors.New("timesheet already submitted")
	ErrNotSubmitted    = errors.New("timesheet has not been submitted")
	ErrLastAdmin       = errors.New("cannot remove the last administrator")
)
