package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/tui/components"
	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderSectionTab shows the tables of one report section, one card per
// table, two cards per row on wide terminals.
func (a App) renderSectionTab(name string, cw int) string {
	s, ok := a.report.Section(name)
	if !ok {
		return components.ContentCard(name, "no data", cw)
	}

	cards := make([]string, 0, len(s.Tables))
	perRow := 2
	if a.isCompactLayout() {
		perRow = 1
	}
	widths := components.LayoutRow(cw, perRow)

	var rows []string
	for i, nt := range s.Tables {
		// the yearly table spans the row
		if i == 0 {
			rows = append(rows, components.ContentCard(nt.Title, tableBody(nt.Table, components.CardInnerWidth(cw)), cw))
			continue
		}
		w := widths[len(cards)]
		cards = append(cards, components.ContentCard(nt.Title, tableBody(nt.Table, components.CardInnerWidth(w)), w))
		if len(cards) == perRow {
			rows = append(rows, components.CardRow(cards))
			cards = cards[:0]
		}
	}
	if len(cards) > 0 {
		rows = append(rows, components.CardRow(cards))
	}
	return strings.Join(rows, "\n")
}

// tableBody lays out an aggregate table as aligned text columns.
func tableBody(tbl model.Table, width int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if tbl.Len() == 0 {
		return dimStyle.Render("no data")
	}

	rendered := cli.TableFromModel("", tbl)
	nk := rendered.KeyCols
	colW := make([]int, len(rendered.Headers))
	for i, h := range rendered.Headers {
		colW[i] = len(h)
	}
	for _, row := range rendered.Rows {
		for i, cell := range row {
			colW[i] = max(colW[i], len(cell))
		}
	}

	cell := func(s string, i int) string {
		if i < nk {
			return fmt.Sprintf("%-*s", colW[i], s)
		}
		return fmt.Sprintf("%*s", colW[i], s)
	}

	var b strings.Builder
	for i, h := range rendered.Headers {
		if i > 0 {
			b.WriteString(headStyle.Render("  "))
		}
		b.WriteString(headStyle.Render(cell(h, i)))
	}
	for _, row := range rendered.Rows {
		b.WriteString("\n")
		for i, c := range row {
			if i > 0 {
				b.WriteString(valueStyle.Render("  "))
			}
			if i < nk {
				b.WriteString(keyStyle.Render(cell(c, i)))
			} else {
				b.WriteString(valueStyle.Render(cell(c, i)))
			}
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}
