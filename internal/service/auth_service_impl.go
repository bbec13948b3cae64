package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/google/uuid"
)

type authService struct {
	employees   repository.EmployeeRepo
	credentials repository.CredentialsRepo
	tokens      repository.TokenRepo
	ttl         time.Duration
	now         func() time.Time
	observer    UseCaseObserver
}

func NewAuthService(
	employees repository.EmployeeRepo,
	credentials repository.CredentialsRepo,
	tokens repository.TokenRepo,
	ttl time.Duration,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		employees:   employees,
		credentials: credentials,
		tokens:      tokens,
		ttl:         ttl,
		now:         func() time.Time { return time.Now().UTC() },
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, userName, password string) (tok *domain.AuthToken, err error) {
	defer observe(ctx, s.observer, "login", time.Now().UTC(), map[string]any{"user": userName}, &err)

	c, err := s.credentials.GetByUserName(ctx, userName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user or wrong password", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if !passwordMatches(c.PasswordHash, password) {
		return nil, fmt.Errorf("%w: unknown user or wrong password", ErrUnauthenticated)
	}

	now := s.now()
	tok = &domain.AuthToken{
		Token:          uuid.NewString(),
		EmployeeNumber: c.EmployeeNumber,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}
	if err = s.tokens.Create(ctx, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.Employee, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}
	number, err := s.tokens.GetEmployeeNumber(ctx, token, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	e, err := s.employees.GetByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: employee %d no longer exists", ErrUnauthenticated, number)
	}
	return e, err
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokens.Delete(ctx, token)
}

func (s *authService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

func (s *authService) Authorize(actor *domain.Employee, employeeNumber int) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.CanAccess(employeeNumber) {
		return fmt.Errorf("%w: %s may not act for employee %d", ErrForbidden, actor.UserName, employeeNumber)
	}
	return nil
}

func (s *authService) RequireAdmin(actor *domain.Employee) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.Permission() != domain.PermissionAdmin {
		return fmt.Errorf("%w: administrator role required", ErrForbidden)
	}
	return nil
}
