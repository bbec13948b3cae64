package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatHours renders hours with one decimal, the precision they are stored at.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// FormatDayHours renders a single day's charge, dimming empty days.
func FormatDayHours(h float64) string {
	if h == 0 {
		return StyleDim.Render("·")
	}
	return FormatHours(h)
}

// FormatAdjustment describes overtime/flextime, or a dash when neither is set.
func FormatAdjustment(ts *domain.Timesheet) string {
	switch {
	case ts.OvertimeDecihours() > 0 && ts.FlextimeDecihours() > 0:
		return StyleRed.Render(fmt.Sprintf("overtime %s + flextime %s",
			FormatHours(ts.OvertimeHours()), FormatHours(ts.FlextimeHours())))
	case ts.OvertimeDecihours() > 0:
		return "overtime " + FormatHours(ts.OvertimeHours())
	case ts.FlextimeDecihours() > 0:
		return "flextime " + FormatHours(ts.FlextimeHours())
	default:
		return StyleDim.Render("—")
	}
}

// WeekLabel renders "2025-01-17 (wk 3)".
func WeekLabel(ts *domain.Timesheet) string {
	return fmt.Sprintf("%s %s", ts.WeekEnding(), Dim(fmt.Sprintf("(wk %d)", ts.WeekNumber())))
}

// HumanTimestamp renders a past instant relative to now.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
