package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/go-chi/render"
)

type key struct{}

var employeeKey = key{}

// RequireBearer resolves the bearer token to an employee and stores it on
// the request context. Requests without a live token get a 401 challenge.
func RequireBearer(auth service.AuthService, realm string) func(http.Handler) http.Handler {
	challenge := fmt.Sprintf("Bearer realm=%q", realm)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", challenge)
				_ = render.Render(w, r, errResponse(http.StatusUnauthorized, service.ErrUnauthenticated))
				return
			}

			employee, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					w.Header().Set("WWW-Authenticate", challenge+`, error="invalid_token"`)
				}
				renderError(w, r, err)
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), employeeKey, employee))
			next.ServeHTTP(w, r)
		})
	}
}

// GetEmployee returns the authenticated caller.
func GetEmployee(c context.Context) (*domain.Employee, error) {
	employee, ok := c.Value(employeeKey).(*domain.Employee)
	if !ok {
		return nil, service.ErrUnauthenticated
	}
	return employee, nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
