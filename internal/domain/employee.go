package domain

import (
	"fmt"
	"regexp"
	"time"
)

var userNamePattern = regexp.MustCompile(`^[a-z][a-z0-9._-]{1,31}$`)

type Employee struct {
	Number    int
	Name      string
	UserName  string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permission returns the role the employee acts with.
func (e *Employee) Permission() Permission {
	if e.IsAdmin {
		return PermissionAdmin
	}
	return PermissionUser
}

// CanAccess reports whether e may read or change data owned by the
// employee with the given number.
func (e *Employee) CanAccess(employeeNumber int) bool {
	return e.IsAdmin || e.Number == employeeNumber
}

// Validate checks the fields required before an employee is stored.
func (e *Employee) Validate() error {
	if e.Number <= 0 {
		return invalidArgument("employee number %d must be positive", e.Number)
	}
	if e.Name == "" {
		return invalidArgument("employee name is required")
	}
	if !userNamePattern.MatchString(e.UserName) {
		return invalidArgument("user name %q must be 2-32 lowercase letters, digits, '.', '_' or '-', starting with a letter", e.UserName)
	}
	return nil
}

func (e *Employee) String() string {
	return fmt.Sprintf("%s\t%d\t%s", e.Name, e.Number, e.UserName)
}

// Credentials holds the login secret for one employee. Only a hash of the
// password is kept.
type Credentials struct {
	EmployeeNumber int
	UserName       string
	PasswordHash   string
	UpdatedAt      time.Time
}
