package api

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type employeeHandlerGroup struct {
	handlerBase
	employees service.EmployeeService
}

func newEmployeeHandlerGroup(employees service.EmployeeService, auth service.AuthService, slog *slog.Logger) *employeeHandlerGroup {
	return &employeeHandlerGroup{
		handlerBase: handlerBase{auth: auth, slog: slog},
		employees:   employees,
	}
}

func (hg *employeeHandlerGroup) Mount(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", hg.handleList)
		r.Post("/", hg.handleCreate)
		r.Get("/{number}", hg.handleGet)
		r.Patch("/{number}", hg.handleUpdate)
		r.Delete("/{number}", hg.handleDelete)
	})
	r.Route("/credentials", func(r chi.Router) {
		r.Get("/{userName}", hg.handleGetCredentials)
		r.Patch("/{number}", hg.handleChangePassword)
	})
}

// handleList returns every employee to administrators and only the caller
// to everyone else.
func (hg *employeeHandlerGroup) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := hg.caller(w, r)
	if !ok {
		return
	}

	employees := []*domain.Employee{actor}
	if actor.IsAdmin {
		var err error
		if employees, err = hg.employees.List(r.Context()); err != nil {
			hg.fail(w, r, err)
			return
		}
	}

	list := make([]render.Renderer, 0, len(employees))
	for _, e := range employees {
		list = append(list, newEmployeeResponse(e))
	}
	_ = render.RenderList(w, r, list)
}

func (hg *employeeHandlerGroup) handleGet(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "number")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if _, ok := hg.authorize(w, r, number); !ok {
		return
	}

	e, err := hg.employees.Get(r.Context(), number)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newEmployeeResponse(e))
}

func (hg *employeeHandlerGroup) handleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := hg.requireAdmin(w, r); !ok {
		return
	}

	req := &EmployeeRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}

	e := &domain.Employee{
		Number:   req.Number,
		Name:     req.Name,
		UserName: req.UserName,
		IsAdmin:  req.IsAdmin,
	}
	if err := hg.employees.Create(r.Context(), e, req.Password); err != nil {
		hg.fail(w, r, err)
		return
	}
	renderCreated(w, r, newEmployeeResponse(e))
}

// handleUpdate lets an employee edit their own name and user name. Only an
// administrator may change the admin flag.
func (hg *employeeHandlerGroup) handleUpdate(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "number")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	actor, ok := hg.authorize(w, r, number)
	if !ok {
		return
	}

	req := &EmployeeRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}

	existing, err := hg.employees.Get(r.Context(), number)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if req.IsAdmin != existing.IsAdmin {
		if err := hg.auth.RequireAdmin(actor); err != nil {
			hg.fail(w, r, err)
			return
		}
	}

	existing.Name = req.Name
	existing.UserName = req.UserName
	existing.IsAdmin = req.IsAdmin
	if err := hg.employees.Update(r.Context(), existing); err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newEmployeeResponse(existing))
}

func (hg *employeeHandlerGroup) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := hg.requireAdmin(w, r); !ok {
		return
	}
	number, err := intParam(r, "number")
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	if err := hg.employees.Delete(r.Context(), number); err != nil {
		hg.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (hg *employeeHandlerGroup) handleGetCredentials(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	actor, ok := hg.caller(w, r)
	if !ok {
		return
	}
	if actor.UserName != userName {
		if _, ok := hg.requireAdmin(w, r); !ok {
			return
		}
	}

	e, err := hg.employees.GetByUserName(r.Context(), userName)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, &CredentialsResponse{EmployeeNumber: e.Number, UserName: e.UserName})
}

func (hg *employeeHandlerGroup) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "number")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if _, ok := hg.authorize(w, r, number); !ok {
		return
	}

	req := &PasswordRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}

	if err := hg.employees.ChangePassword(r.Context(), number, req.Password); err != nil {
		hg.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}
