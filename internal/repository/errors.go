package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")
	// ErrCorruptRow is returned when a stored timesheet row cannot be decoded.
	ErrCorruptRow = errors.New("corrupt timesheet row")
)

// isUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY
// constraint in SQLite.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err came from a FOREIGN KEY
// constraint in SQLite.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
