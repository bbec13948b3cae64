package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

const progressWidth = 20

// FormatTimesheet renders one week: a summary box and the daily grid.
func FormatTimesheet(ts *domain.Timesheet) string {
	var b strings.Builder

	employee := Dim("unassigned")
	if ts.Employee != nil {
		employee = fmt.Sprintf("%s %s", ts.Employee.Name, Dim(fmt.Sprintf("#%d", ts.Employee.Number)))
	}
	lines := []string{
		fmt.Sprintf("%s  %s", Dim("Employee  "), employee),
		fmt.Sprintf("%s  %s", Dim("Week      "), WeekLabel(ts)),
		fmt.Sprintf("%s  %s", Dim("Status    "), StatusPill(ts.Status())),
		fmt.Sprintf("%s  %s", Dim("Total     "), FormatHours(ts.TotalHours())),
		fmt.Sprintf("%s  %s", Dim("Adjustment"), FormatAdjustment(ts)),
		fmt.Sprintf("%s  %s  %s", Dim("Balance   "), RenderWeekProgress(ts, progressWidth), ValidityBadge(ts.IsValid())),
	}
	title := fmt.Sprintf("Timesheet %d", ts.ID)
	if ts.ID == 0 {
		title = "Timesheet"
	}
	b.WriteString(RenderBox(title, strings.Join(lines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(FormatDailyGrid(ts))
	return b.String()
}

// FormatDailyGrid renders one line per row with a column per day, Saturday
// first, and a footer of daily totals.
func FormatDailyGrid(ts *domain.Timesheet) string {
	if len(ts.Details) == 0 {
		return Dim("No rows yet.") + "\n"
	}

	headers := []string{"#", "Project", "Work package"}
	for d := 0; d < domain.DaysInWeek; d++ {
		headers = append(headers, domain.DayName(d))
	}
	headers = append(headers, "Total", "Notes")

	rows := make([][]string, 0, len(ts.Details))
	for i, row := range ts.Details {
		cells := []string{fmt.Sprint(i + 1), fmt.Sprint(row.ProjectID()), row.WorkPackageID}
		for _, h := range row.Hours() {
			cells = append(cells, FormatDayHours(h))
		}
		cells = append(cells, FormatHours(row.Sum()), row.Notes)
		rows = append(rows, cells)
	}

	footer := []string{"", "", "Daily"}
	for _, h := range ts.DailyHours() {
		footer = append(footer, FormatHours(h))
	}
	footer = append(footer, FormatHours(ts.TotalHours()), "")

	numeric := []int{0, 1}
	for c := 3; c < 3+domain.DaysInWeek+1; c++ {
		numeric = append(numeric, c)
	}
	return RenderTable(headers, rows, AlignRight(numeric...), WithFooter(footer...))
}

// FormatTimesheetList renders one line per week.
func FormatTimesheetList(sheets []*domain.Timesheet) string {
	headers := []string{"ID", "Employee", "Week ending", "Wk", "Total", "Adjustment", "Status", ""}
	rows := make([][]string, 0, len(sheets))
	for _, ts := range sheets {
		name := ""
		if ts.Employee != nil {
			name = ts.Employee.Name
		}
		rows = append(rows, []string{
			fmt.Sprint(ts.ID),
			name,
			ts.WeekEnding(),
			fmt.Sprint(ts.WeekNumber()),
			FormatHours(ts.TotalHours()),
			FormatAdjustment(ts),
			StatusPill(ts.Status()),
			ValidityBadge(ts.IsValid()),
		})
	}
	return RenderTable(headers, rows, AlignRight(0, 3, 4))
}
