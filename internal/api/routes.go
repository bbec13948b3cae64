package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func (a *API) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		auth := newAuthHandlerGroup(a.svc.Auth, a.slog)
		r.Post("/authentication", auth.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(RequireBearer(a.svc.Auth, a.realm))

			r.Delete("/authentication", auth.handleLogout)
			newEmployeeHandlerGroup(a.svc.Employees, a.svc.Auth, a.slog).Mount(r)
			newTimesheetHandlerGroup(a.svc.Timesheets, a.svc.Auth, a.slog).Mount(r)
		})
	})
}
