package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

// Services are the use cases the API exposes.
type Services struct {
	Employees  service.EmployeeService
	Auth       service.AuthService
	Timesheets service.TimesheetService
}

type API struct {
	host  string
	port  int
	realm string

	slog   *slog.Logger
	router chi.Router

	svc Services
}

func New(slog *slog.Logger, svc Services) *API {
	api := &API{
		host:  "localhost",
		port:  8080,
		realm: "timesheet",

		router: chi.NewRouter(),
		slog:   slog,

		svc: svc,
	}

	api.RegisterRoutes()

	return api
}

func (a *API) WithHost(host string) *API {
	a.host = host
	return a
}

func (a *API) WithPort(port uint) *API {
	a.port = int(port)
	return a
}

// WithRealm sets the realm announced in WWW-Authenticate challenges.
func (a *API) WithRealm(realm string) *API {
	if realm != "" {
		a.realm = realm
	}
	return a
}

func (a *API) Handler() http.Handler {
	return a.router
}

func (a *API) Addr() string {
	return net.JoinHostPort(a.host, fmt.Sprint(a.port))
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (a *API) Serve(ctx context.Context) error {
	addr := a.Addr()
	server := http.Server{
		Addr:    addr,
		Handler: a.router,

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.slog.Info("server started listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.slog.Info("server shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
