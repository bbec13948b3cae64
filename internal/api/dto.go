package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// RowPayload is a timesheet row on the wire. Hours are Saturday first.
type RowPayload struct {
	ProjectID     int       `json:"projectId"`
	WorkPackageID string    `json:"workPackageId"`
	Hours         []float64 `json:"hours"`
	Notes         string    `json:"notes,omitempty"`
}

func newRowPayload(r *domain.TimesheetRow) RowPayload {
	hours := r.Hours()
	return RowPayload{
		ProjectID:     r.ProjectID(),
		WorkPackageID: r.WorkPackageID,
		Hours:         hours[:],
		Notes:         r.Notes,
	}
}

func (p RowPayload) toDomain() (*domain.TimesheetRow, error) {
	return domain.NewTimesheetRow(p.ProjectID, p.WorkPackageID, p.Notes, p.Hours...)
}

func rowsToDomain(payloads []RowPayload) ([]*domain.TimesheetRow, error) {
	rows := make([]*domain.TimesheetRow, 0, len(payloads))
	for i, p := range payloads {
		row, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowsRequest carries rows to append or replace.
type RowsRequest struct {
	Rows []RowPayload `json:"rows"`
}

// RowsRequest satisfies [render.Binder]
func (req *RowsRequest) Bind(r *http.Request) error {
	if req.Rows == nil {
		req.Rows = []RowPayload{}
	}
	return nil
}

// TimesheetRequest creates or patches a timesheet. EndDate may be any day;
// it is moved to the Friday ending that week. On PATCH an omitted field
// keeps its stored value and an explicit empty details list clears the rows.
type TimesheetRequest struct {
	Employee *int          `json:"employee,omitempty"`
	EndDate  string        `json:"endDate,omitempty"`
	Overtime *float64      `json:"overtime,omitempty"`
	Flextime *float64      `json:"flextime,omitempty"`
	Details  *[]RowPayload `json:"details,omitempty"`

	endDate time.Time
}

// TimesheetRequest satisfies [render.Binder]
func (req *TimesheetRequest) Bind(r *http.Request) error {
	if req.EndDate == "" {
		if r.Method == http.MethodPost {
			return fmt.Errorf("%w: endDate is required", domain.ErrInvalidArgument)
		}
		return nil
	}
	end, err := domain.ParseWeekEnding(req.EndDate)
	if err != nil {
		return err
	}
	req.endDate = end
	return nil
}

// apply copies the fields present in the request onto ts.
func (req *TimesheetRequest) apply(ts *domain.Timesheet) error {
	if !req.endDate.IsZero() {
		ts.SetEndDate(req.endDate)
	}
	if req.Overtime != nil {
		if err := ts.SetOvertimeHours(*req.Overtime); err != nil {
			return err
		}
	}
	if req.Flextime != nil {
		if err := ts.SetFlextimeHours(*req.Flextime); err != nil {
			return err
		}
	}
	if req.Details != nil {
		rows, err := rowsToDomain(*req.Details)
		if err != nil {
			return err
		}
		ts.Details = rows
	}
	return nil
}

// TimesheetResponse adds the computed totals to the stored timesheet.
type TimesheetResponse struct {
	ID          int64            `json:"timesheetId"`
	Employee    EmployeeResponse `json:"employee"`
	EndDate     string           `json:"endDate"`
	WeekNumber  int              `json:"weekNumber"`
	Overtime    float64          `json:"overtime"`
	Flextime    float64          `json:"flextime"`
	Details     []RowPayload     `json:"details"`
	TotalHours  float64          `json:"totalHours"`
	DailyHours  []float64        `json:"dailyHours"`
	Valid       bool             `json:"valid"`
	Status      string           `json:"status"`
	SubmittedAt *time.Time       `json:"submittedAt,omitempty"`
}

func (TimesheetResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

func newTimesheetResponse(ts *domain.Timesheet) *TimesheetResponse {
	details := make([]RowPayload, 0, len(ts.Details))
	for _, row := range ts.Details {
		details = append(details, newRowPayload(row))
	}
	daily := ts.DailyHours()
	resp := &TimesheetResponse{
		ID:          ts.ID,
		EndDate:     ts.WeekEnding(),
		WeekNumber:  ts.WeekNumber(),
		Overtime:    ts.OvertimeHours(),
		Flextime:    ts.FlextimeHours(),
		Details:     details,
		TotalHours:  ts.TotalHours(),
		DailyHours:  daily[:],
		Valid:       ts.IsValid(),
		Status:      string(ts.Status()),
		SubmittedAt: ts.SubmittedAt,
	}
	if ts.Employee != nil {
		resp.Employee = *newEmployeeResponse(ts.Employee)
	}
	return resp
}

// EmployeeRequest creates or updates an employee. Password is only read on
// create.
type EmployeeRequest struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	IsAdmin  bool   `json:"isAdmin"`
	Password string `json:"password,omitempty"`
}

// EmployeeRequest satisfies [render.Binder]
func (req *EmployeeRequest) Bind(r *http.Request) error {
	if req.Name == "" || req.UserName == "" {
		return fmt.Errorf("%w: name and userName are required", domain.ErrInvalidArgument)
	}
	return nil
}

type EmployeeResponse struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (EmployeeResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

func newEmployeeResponse(e *domain.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		Number:   e.Number,
		Name:     e.Name,
		UserName: e.UserName,
		IsAdmin:  e.IsAdmin,
	}
}

// CredentialsResponse never carries the password or its hash.
type CredentialsResponse struct {
	EmployeeNumber int    `json:"employeeNumber"`
	UserName       string `json:"userName"`
}

func (CredentialsResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

type PasswordRequest struct {
	Password string `json:"password"`
}

// PasswordRequest satisfies [render.Binder]
func (req *PasswordRequest) Bind(r *http.Request) error {
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidArgument)
	}
	return nil
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginRequest satisfies [render.Binder]
func (req *LoginRequest) Bind(r *http.Request) error {
	if req.UserName == "" || req.Password == "" {
		return errors.New("userName and password are required")
	}
	return nil
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (LoginResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

func (RowPayload) Render(w http.ResponseWriter, r *http.Request) error { return nil }
