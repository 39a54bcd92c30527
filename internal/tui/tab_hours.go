package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
	"github.com/theirongolddev/meterstat/internal/tui/components"
	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderHoursTab shows the hour-of-day profile of every year followed by
// a sparkline per month and season panel.
func (a App) renderHoursTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}

	if all, ok := a.report.Chart(pipeline.ChartAll); ok {
		for _, p := range all.Panels {
			if p.Title != pipeline.PanelHourly {
				continue
			}
			if len(p.Series) == 0 {
				b.WriteString(components.ContentCard(p.Title, "no data", cw))
				b.WriteString("\n")
			}
			for i, s := range p.Series {
				title := fmt.Sprintf("%s %s (kWh)", p.Title, s.Label)
				body := components.ProfileChart(s, cli.FormatHour, t.SeriesColor(i), components.CardInnerWidth(cw), chartH)
				b.WriteString(components.ContentCard(title, body, cw))
				b.WriteString("\n")
			}
		}
	}

	if months, ok := a.report.Chart(pipeline.ChartMonths); ok {
		b.WriteString(components.ContentCard("Average by hour per month", monthsBody(months.Panels), cw))
	}
	return b.String()
}

// monthsBody renders one row per panel with a sparkline per year, so the
// daily shape of every month can be compared at a glance.
func monthsBody(panels []model.Panel) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	yearStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	peakStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	labelW := 0
	for _, p := range panels {
		labelW = max(labelW, len(panelLabel(p.Title)))
	}

	lines := make([]string, 0, len(panels))
	for _, p := range panels {
		line := labelStyle.Render(fmt.Sprintf("%-*s", labelW, panelLabel(p.Title)))
		if len(p.Series) == 0 {
			lines = append(lines, line+yearStyle.Render("  no data"))
			continue
		}
		for i, s := range p.Series {
			peak, peakHour := 0.0, 0
			for j, y := range s.Y {
				if y > peak {
					peak, peakHour = y, s.X[j]
				}
			}
			line += spaceStyle.Render("  ") +
				yearStyle.Render(s.Label+" ") +
				components.Sparkline(s.Y, t.SeriesColor(i)) +
				peakStyle.Render(fmt.Sprintf(" %s@%s", cli.FormatEnergy(peak), cli.FormatHour(peakHour)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// panelLabel shortens "Average by hour Month 3" to "Mar" and
// "Average by hour Winter" to "Winter".
func panelLabel(title string) string {
	rest := strings.TrimPrefix(title, "Average by hour ")
	var m int
	if _, err := fmt.Sscanf(rest, "Month %d", &m); err == nil {
		return cli.FormatMonth(m)
	}
	return rest
}
