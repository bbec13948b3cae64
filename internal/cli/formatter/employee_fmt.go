package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

func FormatEmployeeList(employees []*domain.Employee) string {
	headers := []string{"Number", "Name", "User", "Role"}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			fmt.Sprint(e.Number),
			e.Name,
			e.UserName,
			RoleBadge(e.Permission()),
		})
	}
	return RenderTable(headers, rows, AlignRight(0))
}

func FormatEmployee(e *domain.Employee) string {
	lines := []string{
		fmt.Sprintf("%s  %d", Dim("Number"), e.Number),
		fmt.Sprintf("%s  %s", Dim("Name  "), e.Name),
		fmt.Sprintf("%s  %s", Dim("User  "), e.UserName),
		fmt.Sprintf("%s  %s", Dim("Role  "), RoleBadge(e.Permission())),
	}
	if !e.CreatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("%s  %s", Dim("Since "), e.CreatedAt.Format("Jan 2, 2006")))
	}
	return RenderBox("Employee", strings.Join(lines, "\n"))
}
