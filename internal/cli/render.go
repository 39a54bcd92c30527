package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// Flexoki Dark, shared with the TUI default theme.
var (
	colorBorder = lipgloss.Color("#282726")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorOK     = lipgloss.Color("#879A39")
	colorWarn   = lipgloss.Color("#DA702C")
	colorEnergy = lipgloss.Color("#4385BE")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	energyStyle = lipgloss.NewStyle().Foreground(colorEnergy)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const titleWidth = 55

// Table is an aggregate table ready for the terminal. The first KeyCols
// columns are group keys and are left aligned; the rest are statistics and
// are right aligned. KeyCols below one is treated as one.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	KeyCols int
}

// RenderTitle renders a report heading in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable draws t with box rules. A table without rows renders its
// title and a "no data" line.
func RenderTable(t Table) string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString(dimStyle.Render("  no data") + "\n")
		return b.String()
	}

	widths := columnWidths(t)
	keyCols := max(t.KeyCols, 1)

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, widths, keyCols, headerStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		b.WriteString(line(row, widths, keyCols, valueStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table) []int {
	n := max(len(t.Headers), len(lo.MaxBy(t.Rows, func(a, b []string) bool { return len(a) > len(b) })))
	widths := make([]int, n)
	for _, row := range append([][]string{t.Headers}, t.Rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	segs := lo.Map(widths, func(w, _ int) string { return strings.Repeat("─", w+2) })
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func line(cells []string, widths []int, keyCols int, style lipgloss.Style) string {
	sep := dimStyle.Render("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-lipgloss.Width(cell))
		if i < keyCols {
			cell += pad
		} else {
			cell = pad + cell
		}
		b.WriteString(style.Render(" "+cell+" ") + sep)
	}
	b.WriteString("\n")
	return b.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws one block per value, scaled to the largest value.
// Values at or below zero use the lowest block.
func RenderSparkline(values []float64) string {
	top := lo.Max(values)
	if top <= 0 {
		top = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(sparkBlocks)-1))
		b.WriteRune(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
	}
	return b.String()
}

// RenderHorizontalBar renders one profile entry: its label, a bar scaled
// against maxValue and the value in kWh.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return "  " + label
	}
	n := min(max(int(value/maxValue*float64(maxWidth)), 0), maxWidth)
	bar := strings.Repeat("█", n) + strings.Repeat(" ", maxWidth-n)
	return fmt.Sprintf("  %s %s %s", mutedStyle.Render(label), energyStyle.Render(bar), valueStyle.Render(FormatEnergy(value)))
}

// RenderStatus colors a completeness line: green when no day was
// missing, orange otherwise.
func RenderStatus(text string, missing bool) string {
	if missing {
		return warnStyle.Render(text)
	}
	return okStyle.Render(text)
}
