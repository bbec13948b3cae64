package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{service.ErrUnauthenticated, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrDuplicateWeek, http.StatusConflict},
		{repository.ErrConflict, http.StatusConflict},
		{service.ErrSubmitted, http.StatusConflict},
		{service.ErrNotSubmitted, http.StatusConflict},
		{service.ErrLastAdmin, http.StatusConflict},
		{service.ErrTooManyRows, http.StatusUnprocessableEntity},
		{service.ErrUnbalanced, http.StatusUnprocessableEntity},
		{db.ErrBusy, http.StatusServiceUnavailable},
		{repository.ErrCorruptRow, http.StatusInternalServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(fmt.Errorf("wrapped: %w", c.err)), c.err.Error())
	}
}

func TestErrResponse_HidesInternalDetail(t *testing.T) {
	resp := errResponse(http.StatusInternalServerError, errors.New("sql: connection refused"))
	assert.Empty(t, resp.ErrorText)
	assert.Equal(t, "Internal Server Error", resp.StatusText)

	resp = errResponse(http.StatusConflict, service.ErrSubmitted)
	assert.Equal(t, service.ErrSubmitted.Error(), resp.ErrorText)
}
