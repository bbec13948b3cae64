package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type timesheetHandlerGroup struct {
	handlerBase
	timesheets service.TimesheetService
}

func newTimesheetHandlerGroup(timesheets service.TimesheetService, auth service.AuthService, slog *slog.Logger) *timesheetHandlerGroup {
	return &timesheetHandlerGroup{
		handlerBase: handlerBase{auth: auth, slog: slog},
		timesheets:  timesheets,
	}
}

func (hg *timesheetHandlerGroup) Mount(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.Get("/", hg.handleList)
		r.Post("/", hg.handleCreate)
		r.Get("/current", hg.handleCurrent)
		r.Get("/{id}", hg.handleGet)
		r.Patch("/{id}", hg.handleUpdate)
		r.Delete("/{id}", hg.handleDelete)
		r.Post("/{id}/submit", hg.handleSubmit)
		r.Post("/{id}/reopen", hg.handleReopen)
	})
	r.Route("/rows", func(r chi.Router) {
		r.Get("/{timesheetId}", hg.handleListRows)
		r.Post("/", hg.handleAddRows)
		r.Patch("/", hg.handleReplaceRows)
	})
}

// employeeQuery reads ?employee=, defaulting to the caller.
func employeeQuery(r *http.Request, actor *domain.Employee) (int, bool, error) {
	v := r.URL.Query().Get("employee")
	if v == "" {
		return actor.Number, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: employee must be a number", domain.ErrInvalidArgument)
	}
	return n, true, nil
}

// loadOwned fetches a timesheet and checks the caller may act on it.
func (hg *timesheetHandlerGroup) loadOwned(w http.ResponseWriter, r *http.Request, id int64) (*domain.Timesheet, bool) {
	ts, err := hg.timesheets.Get(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return nil, false
	}
	if _, ok := hg.authorize(w, r, ts.Employee.Number); !ok {
		return nil, false
	}
	return ts, true
}

func renderTimesheets(w http.ResponseWriter, r *http.Request, sheets []*domain.Timesheet) {
	list := make([]render.Renderer, 0, len(sheets))
	for _, ts := range sheets {
		list = append(list, newTimesheetResponse(ts))
	}
	_ = render.RenderList(w, r, list)
}

// handleList lists timesheets. Without ?employee= an administrator sees
// every employee's weeks; ?weekEnding= narrows the result to one week.
func (hg *timesheetHandlerGroup) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := hg.caller(w, r)
	if !ok {
		return
	}
	number, explicit, err := employeeQuery(r, actor)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if err := hg.auth.Authorize(actor, number); err != nil {
		hg.fail(w, r, err)
		return
	}

	if week := r.URL.Query().Get("weekEnding"); week != "" {
		end, err := domain.ParseWeekEnding(week)
		if err != nil {
			hg.fail(w, r, err)
			return
		}
		ts, err := hg.timesheets.FindByWeek(r.Context(), number, end)
		if errors.Is(err, repository.ErrNotFound) {
			renderTimesheets(w, r, nil)
			return
		}
		if err != nil {
			hg.fail(w, r, err)
			return
		}
		renderTimesheets(w, r, []*domain.Timesheet{ts})
		return
	}

	var sheets []*domain.Timesheet
	if actor.IsAdmin && !explicit {
		sheets, err = hg.timesheets.List(r.Context())
	} else {
		sheets, err = hg.timesheets.ListByEmployee(r.Context(), number)
	}
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	renderTimesheets(w, r, sheets)
}

func (hg *timesheetHandlerGroup) handleCurrent(w http.ResponseWriter, r *http.Request) {
	actor, ok := hg.caller(w, r)
	if !ok {
		return
	}
	number, _, err := employeeQuery(r, actor)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if err := hg.auth.Authorize(actor, number); err != nil {
		hg.fail(w, r, err)
		return
	}

	ts, err := hg.timesheets.Current(r.Context(), number)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}

func (hg *timesheetHandlerGroup) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	ts, ok := hg.loadOwned(w, r, id)
	if !ok {
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}

func (hg *timesheetHandlerGroup) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := hg.caller(w, r)
	if !ok {
		return
	}

	req := &TimesheetRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}

	owner := actor
	if req.Employee != nil && *req.Employee != actor.Number {
		if err := hg.auth.Authorize(actor, *req.Employee); err != nil {
			hg.fail(w, r, err)
			return
		}
		owner = &domain.Employee{Number: *req.Employee}
	}

	ts := domain.NewTimesheetFor(owner, req.endDate)
	if err := req.apply(ts); err != nil {
		hg.fail(w, r, err)
		return
	}
	if err := hg.timesheets.Create(r.Context(), ts); err != nil {
		hg.fail(w, r, err)
		return
	}

	created, err := hg.timesheets.Get(r.Context(), ts.ID)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	renderCreated(w, r, newTimesheetResponse(created))
}

func (hg *timesheetHandlerGroup) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	ts, ok := hg.loadOwned(w, r, id)
	if !ok {
		return
	}

	req := &TimesheetRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}
	if err := req.apply(ts); err != nil {
		hg.fail(w, r, err)
		return
	}
	if err := hg.timesheets.Update(r.Context(), ts); err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}

func (hg *timesheetHandlerGroup) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if _, ok := hg.loadOwned(w, r, id); !ok {
		return
	}
	if err := hg.timesheets.Delete(r.Context(), id); err != nil {
		hg.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (hg *timesheetHandlerGroup) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	if _, ok := hg.loadOwned(w, r, id); !ok {
		return
	}
	ts, err := hg.timesheets.Submit(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}

// handleReopen returns a submitted week to draft. Administrators only.
func (hg *timesheetHandlerGroup) handleReopen(w http.ResponseWriter, r *http.Request) {
	if _, ok := hg.requireAdmin(w, r); !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	ts, err := hg.timesheets.Reopen(r.Context(), id)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}

func (hg *timesheetHandlerGroup) handleListRows(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "timesheetId")
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	ts, ok := hg.loadOwned(w, r, id)
	if !ok {
		return
	}
	list := make([]render.Renderer, 0, len(ts.Details))
	for _, row := range ts.Details {
		list = append(list, newRowPayload(row))
	}
	_ = render.RenderList(w, r, list)
}

// rowsTarget resolves ?timesheetId= and the rows in the request body.
func (hg *timesheetHandlerGroup) rowsTarget(w http.ResponseWriter, r *http.Request) (int64, []*domain.TimesheetRow, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("timesheetId"), 10, 64)
	if err != nil {
		hg.fail(w, r, fmt.Errorf("%w: timesheetId must be a number", domain.ErrInvalidArgument))
		return 0, nil, false
	}
	if _, ok := hg.loadOwned(w, r, id); !ok {
		return 0, nil, false
	}

	req := &RowsRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return 0, nil, false
	}
	rows, err := rowsToDomain(req.Rows)
	if err != nil {
		hg.fail(w, r, err)
		return 0, nil, false
	}
	return id, rows, true
}

func (hg *timesheetHandlerGroup) handleAddRows(w http.ResponseWriter, r *http.Request) {
	id, rows, ok := hg.rowsTarget(w, r)
	if !ok {
		return
	}
	ts, err := hg.timesheets.AddRows(r.Context(), id, rows...)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	renderCreated(w, r, newTimesheetResponse(ts))
}

func (hg *timesheetHandlerGroup) handleReplaceRows(w http.ResponseWriter, r *http.Request) {
	id, rows, ok := hg.rowsTarget(w, r)
	if !ok {
		return
	}
	ts, err := hg.timesheets.ReplaceRows(r.Context(), id, rows)
	if err != nil {
		hg.fail(w, r, err)
		return
	}
	_ = render.Render(w, r, newTimesheetResponse(ts))
}
