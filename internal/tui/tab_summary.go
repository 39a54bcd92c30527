package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
	"github.com/theirongolddev/meterstat/internal/tui/components"
	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// maxListedDays caps the incomplete days listed on the summary tab.
const maxListedDays = 12

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	c := a.report.Completeness
	var b strings.Builder

	all, _ := a.report.Section(pipeline.SectionAll)
	yearly, _ := all.Table(pipeline.TableYearly)
	daily, _ := all.Table(pipeline.TableDaily)

	total := 0.0
	for _, r := range yearly.Rows {
		total += r.Sum
	}

	// Row 1: metric cards
	mode := "removed"
	if !c.Removed {
		mode = "kept"
	}
	missing := components.Metric{
		Label: "Missing data",
		Value: cli.FormatPercent(c.MissingPercentage),
		Delta: fmt.Sprintf("%d days %s", c.MissingDays, mode),
		Warn:  c.MissingDays > 0,
	}
	if c.MissingDays == 0 {
		missing.Delta = "all days complete"
	}
	metrics := []components.Metric{
		{Label: "Readings", Value: cli.FormatNumber(int64(len(a.result.Readings))), Delta: a.report.Kind},
		{Label: "Days", Value: cli.FormatNumber(int64(c.TotalDays)), Delta: fmt.Sprintf("%d in report", c.TotalDays-removedDays(c))},
		missing,
		{Label: "Total use", Value: cli.FormatKWh(total), Delta: fmt.Sprintf("%d years", yearly.Len())},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: yearly totals with year-on-year change
	b.WriteString(components.ContentCard(pipeline.TableYearly, yearlyBody(yearly, daily), cw))
	b.WriteString("\n")

	// Row 3: missing data and time-of-day shares
	missingCard := func(w int) string {
		return components.ContentCard("Missing data", a.missingBody(components.CardInnerWidth(w)), w)
	}
	shareCard := func(w int) string {
		return components.ContentCard("Time of day share", a.shareBody(components.CardInnerWidth(w)), w)
	}
	if a.isCompactLayout() {
		b.WriteString(missingCard(cw))
		b.WriteString("\n")
		b.WriteString(shareCard(cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{missingCard(halves[0]), shareCard(halves[1])}))
	}

	return lipgloss.NewStyle().Background(t.Background).Render(b.String())
}

func removedDays(c model.Completeness) int {
	if c.Removed {
		return c.MissingDays
	}
	return 0
}

func yearlyBody(yearly, daily model.Table) string {
	t := theme.Active
	yearStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	upStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if yearly.Len() == 0 {
		return dimStyle.Render("no data")
	}

	lines := make([]string, 0, yearly.Len())
	for i, r := range yearly.Rows {
		year := r.Key[0]
		line := yearStyle.Render(fmt.Sprintf("%-6d", year)) +
			valueStyle.Render(fmt.Sprintf("%14s", cli.FormatKWh(r.Sum)))
		if i > 0 {
			prev := yearly.Rows[i-1].Sum
			style := downStyle
			if r.Sum > prev {
				style = upStyle
			}
			line += style.Render(fmt.Sprintf("  %12s", cli.FormatDelta(r.Sum, prev)))
		} else {
			line += dimStyle.Render(fmt.Sprintf("  %12s", ""))
		}
		if d, ok := daily.Lookup(year); ok {
			line += dimStyle.Render(fmt.Sprintf("   %s kWh/day (%s to %s)",
				cli.FormatEnergy(d.Mean), cli.FormatEnergy(d.Min), cli.FormatEnergy(d.Max)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a App) missingBody(width int) string {
	t := theme.Active
	c := a.report.Completeness
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(width)
	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(components.ColorForMissing(c.MissingPercentage))).Background(t.Surface)

	var b strings.Builder
	b.WriteString(textStyle.Render(c.Outcome()))
	b.WriteString("\n\n")
	b.WriteString(components.ProgressBar(c.MissingPercentage/100, max(width-6, 10)))

	if n := len(c.IncompleteDays); n > 0 {
		b.WriteString("\n\n")
		shown := c.IncompleteDays[:min(n, maxListedDays)]
		labels := make([]string, len(shown))
		for i, k := range shown {
			labels[i] = dayLabel(k)
		}
		b.WriteString(dayStyle.Render(strings.Join(labels, "  ")))
		if n > maxListedDays {
			b.WriteString(noteStyle.Render(fmt.Sprintf(" and %d more", n-maxListedDays)))
		}
	}
	return b.String()
}

// dayLabel renders a year*1000+yearday key as a calendar date.
func dayLabel(key int) string {
	year, yday := key/1000, key%1000
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, yday-1)
	return d.Format("2 Jan 2006")
}

// shareBody shows the part of each year's use falling in the night and
// evening bands. Both sides come from the filtered set.
func (a App) shareBody(width int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	yearStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	if a.yearly.Len() == 0 {
		return dimStyle.Render("no data")
	}

	night := pipeline.NightBand.Totals(a.filtered)
	evening := pipeline.EveningBand.Totals(a.filtered)
	labelW := 9
	barW := max(width-labelW-6, 10)

	var b strings.Builder
	for i, y := range a.yearly.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(yearStyle.Render(strconv.Itoa(y.Key[0])))
		b.WriteString("\n")
		for _, band := range []struct {
			label string
			table model.Table
			color lipgloss.Color
		}{
			{"00-06", night, t.Blue},
			{"16-18", evening, t.Orange},
		} {
			share := 0.0
			if r, ok := band.table.Lookup(y.Key...); ok && y.Sum > 0 {
				share = r.Sum / y.Sum
			}
			b.WriteString(components.ShareBar(band.label, share, string(band.color), labelW, barW))
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
