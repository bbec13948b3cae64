package service

import (
	"fmt"

	"github.com/alexanderramin/timesheet/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 4
	maxPasswordLength = 72
)

var passwordCost = bcrypt.DefaultCost

// hashPassword returns the salted bcrypt hash stored for a password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidArgument, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidArgument, maxPasswordLength)
	}
	return nil
}
