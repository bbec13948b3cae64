package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

const (
	bootstrapAdminNumber = 1
	bootstrapAdminName   = "Administrator"
)

type employeeService struct {
	employees repository.EmployeeRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewEmployeeService(employees repository.EmployeeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EmployeeService {
	return &employeeService{
		employees: employees,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee, password string) (err error) {
	defer observe(ctx, s.observer, "create-employee", time.Now().UTC(), map[string]any{"employee": e.Number}, &err)

	if err = e.Validate(); err != nil {
		return err
	}
	if err = checkPassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	e.CreatedAt = now
	e.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteEmployeeRepo(tx).Create(ctx, e); err != nil {
			return err
		}
		return repository.NewSQLiteCredentialsRepo(tx).Upsert(ctx, &domain.Credentials{
			EmployeeNumber: e.Number,
			UserName:       e.UserName,
			PasswordHash:   hash,
			UpdatedAt:      now,
		})
	})
}

func (s *employeeService) Get(ctx context.Context, number int) (*domain.Employee, error) {
	return s.employees.GetByNumber(ctx, number)
}

func (s *employeeService) GetByUserName(ctx context.Context, userName string) (*domain.Employee, error) {
	return s.employees.GetByUserName(ctx, userName)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) (err error) {
	defer observe(ctx, s.observer, "update-employee", time.Now().UTC(), map[string]any{"employee": e.Number}, &err)

	if err = e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		employees := repository.NewSQLiteEmployeeRepo(tx)
		creds := repository.NewSQLiteCredentialsRepo(tx)

		existing, err := employees.GetByNumber(ctx, e.Number)
		if err != nil {
			return err
		}
		if existing.IsAdmin && !e.IsAdmin {
			if err := ensureOtherAdmin(ctx, employees); err != nil {
				return err
			}
		}
		e.CreatedAt = existing.CreatedAt
		if err := employees.Update(ctx, e); err != nil {
			return err
		}

		if existing.UserName == e.UserName {
			return nil
		}
		c, err := creds.GetByEmployeeNumber(ctx, e.Number)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		c.UserName = e.UserName
		c.UpdatedAt = e.UpdatedAt
		return creds.Upsert(ctx, c)
	})
}

func (s *employeeService) Delete(ctx context.Context, number int) (err error) {
	defer observe(ctx, s.observer, "delete-employee", time.Now().UTC(), map[string]any{"employee": number}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		employees := repository.NewSQLiteEmployeeRepo(tx)
		e, err := employees.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if e.IsAdmin {
			if err := ensureOtherAdmin(ctx, employees); err != nil {
				return err
			}
		}
		// Credentials, tokens and timesheets cascade.
		return employees.Delete(ctx, number)
	})
}

func (s *employeeService) ChangePassword(ctx context.Context, number int, password string) (err error) {
	defer observe(ctx, s.observer, "change-password", time.Now().UTC(), map[string]any{"employee": number}, &err)

	if err = checkPassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		e, err := repository.NewSQLiteEmployeeRepo(tx).GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		return repository.NewSQLiteCredentialsRepo(tx).Upsert(ctx, &domain.Credentials{
			EmployeeNumber: e.Number,
			UserName:       e.UserName,
			PasswordHash:   hash,
			UpdatedAt:      time.Now().UTC(),
		})
	})
}

func (s *employeeService) EnsureAdmin(ctx context.Context, userName, password string) (bool, error) {
	existing, err := s.employees.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	admin := &domain.Employee{
		Number:   bootstrapAdminNumber,
		Name:     bootstrapAdminName,
		UserName: userName,
		IsAdmin:  true,
	}
	if err := s.Create(ctx, admin, password); err != nil {
		return false, fmt.Errorf("bootstrapping administrator: %w", err)
	}
	return true, nil
}

func ensureOtherAdmin(ctx context.Context, employees repository.EmployeeRepo) error {
	n, err := employees.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	return nil
}
