package domain

type Permission string

const (
	PermissionAdmin Permission = "admin"
	PermissionUser  Permission = "user"
)

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
)

// Status derives the review state from the submission timestamp.
func (t *Timesheet) Status() TimesheetStatus {
	if t.IsSubmitted() {
		return TimesheetSubmitted
	}
	return TimesheetDraft
}

