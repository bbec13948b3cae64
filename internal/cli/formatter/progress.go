package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderWeekProgress renders net hours against the 40-hour week, e.g.
// [████████░░] 32.0/40.0h. Green when balanced, red when over, yellow when
// still short.
func RenderWeekProgress(ts *domain.Timesheet, width int) string {
	if width < 2 {
		width = 2
	}
	net := ts.TotalDecihours() - ts.OvertimeDecihours() - ts.FlextimeDecihours()

	pct := float64(net) / float64(domain.FullWorkWeek)
	pct = min(max(pct, 0), 1)
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case ts.IsValid():
		style = StyleGreen
	case net > domain.FullWorkWeek:
		style = StyleRed
	}

	return fmt.Sprintf("[%s] %s/%sh", style.Render(bar),
		FormatHours(domain.ToHour(net)), FormatHours(domain.ToHour(domain.FullWorkWeek)))
}
