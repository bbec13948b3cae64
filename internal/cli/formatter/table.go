package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// TableOption adjusts how RenderTable lays out cells.
type TableOption func(*tableConfig)

type tableConfig struct {
	rightAlign map[int]bool
	footer     []string
}

// AlignRight right-aligns the given column indexes, for numbers.
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, col := range cols {
			c.rightAlign[col] = true
		}
	}
}

// WithFooter adds a bold summary row under a second rule.
func WithFooter(cells ...string) TableOption {
	return func(c *tableConfig) {
		c.footer = cells
	}
}

// RenderTable renders headers, a rule and the rows with every column padded
// to its widest visible cell. Widths ignore ANSI styling.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := &tableConfig{rightAlign: map[int]bool{}}
	for _, opt := range opts {
		opt(cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	measure(cfg.footer)

	var b strings.Builder
	writeRow := func(row []string, style func(...string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
			if style != nil {
				cell = style(cell)
			}
			if cfg.rightAlign[i] {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(pad)
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	writeRule := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, StyleHeader.Render)
	writeRule()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if cfg.footer != nil {
		writeRule()
		writeRow(cfg.footer, StyleBold.Render)
	}
	return b.String()
}
