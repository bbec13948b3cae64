package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// handlerBase carries what every handler group needs to authorize callers
// and report failures.
type handlerBase struct {
	auth service.AuthService
	slog *slog.Logger
}

func (h handlerBase) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		h.slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	renderError(w, r, err)
}

// caller returns the authenticated employee, answering 401 when absent.
func (h handlerBase) caller(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	actor, err := GetEmployee(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return actor, true
}

// authorize checks the caller may act for employeeNumber.
func (h handlerBase) authorize(w http.ResponseWriter, r *http.Request, employeeNumber int) (*domain.Employee, bool) {
	actor, ok := h.caller(w, r)
	if !ok {
		return nil, false
	}
	if err := h.auth.Authorize(actor, employeeNumber); err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return actor, true
}

func (h handlerBase) requireAdmin(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	actor, ok := h.caller(w, r)
	if !ok {
		return nil, false
	}
	if err := h.auth.RequireAdmin(actor); err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return actor, true
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidArgument, name)
	}
	return v, nil
}

func idParam(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidArgument, name)
	}
	return v, nil
}

func renderCreated(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	render.Status(r, http.StatusCreated)
	_ = render.Render(w, r, v)
}
