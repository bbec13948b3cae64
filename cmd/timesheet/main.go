package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/timesheet/internal/cli"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	credentialsRepo := repository.NewSQLiteCredentialsRepo(database)
	tokenRepo := repository.NewSQLiteTokenRepo(database)
	timesheetRepo := repository.NewSQLiteTimesheetRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := &cli.App{
		Employees:  service.NewEmployeeService(employeeRepo, uow, observer),
		Auth:       service.NewAuthService(employeeRepo, credentialsRepo, tokenRepo, cfg.TokenTTL, observer),
		Timesheets: service.NewTimesheetService(timesheetRepo, uow, observer),
		Import:     service.NewImportService(employeeRepo, uow, observer),

		Config: cfg,
		Logger: logger,
	}

	// Detect interactive terminal for password prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if cfg.BootstrapAdmin() {
		created, err := app.Employees.EnsureAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("created administrator", "user", cfg.AdminUser)
		}
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
