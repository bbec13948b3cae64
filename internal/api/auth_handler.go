package api

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/render"
)

type authHandlerGroup struct {
	handlerBase
}

func newAuthHandlerGroup(auth service.AuthService, slog *slog.Logger) *authHandlerGroup {
	return &authHandlerGroup{handlerBase{auth: auth, slog: slog}}
}

func (hg *authHandlerGroup) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := &LoginRequest{}
	if err := render.Bind(r, req); err != nil {
		renderBindError(w, r, err)
		return
	}

	token, err := hg.auth.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		hg.fail(w, r, err)
		return
	}

	renderCreated(w, r, &LoginResponse{Token: token.Token, ExpiresAt: token.ExpiresAt})
}

func (hg *authHandlerGroup) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	if err := hg.auth.Logout(r.Context(), token); err != nil {
		hg.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}
