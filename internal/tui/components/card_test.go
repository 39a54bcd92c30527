package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(10, 3)
	if len(widths) != 3 || widths[0] != 4 || widths[1] != 3 || widths[2] != 3 {
		t.Errorf("LayoutRow(10, 3) = %v, want [4 3 3]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowPadsShortCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)
	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("padding line %d has no background styling", i)
		}
		if w := lipgloss.Width(lines[i]); w != 44 {
			t.Errorf("line %d width = %d, want 44", i, w)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Days", Value: "365"},
		{Label: "Missing", Value: "12", Warn: true},
		{Label: "Total", Value: "8,760.0 kWh", Delta: "+120.0 vs 2022"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "8,760.0 kWh") {
		t.Error("row is missing the total value")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('u'); got != 3 {
		t.Errorf("TabIdxByKey('u') = %d, want 3 (Summer)", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
	for i, tab := range Tabs {
		if tab.Name[tab.KeyPos] != byte(tab.Key) && tab.Name[tab.KeyPos] != byte(tab.Key-32) {
			t.Errorf("tab %d %q: key %q not at KeyPos %d", i, tab.Name, tab.Key, tab.KeyPos)
		}
	}
}

func TestBarChartHeight(t *testing.T) {
	values := make([]float64, 24)
	labels := make([]string, 24)
	for i := range values {
		values[i] = float64(i % 6)
		labels[i] = strings.Repeat("x", 2)
	}
	out := BarChart(values, labels, theme.Active.Blue, 80, 6)
	// 6 bar rows, the axis and the label line.
	if got := lipgloss.Height(out); got != 8 {
		t.Errorf("height = %d, want 8", got)
	}
	if got := BarChart(values, nil, theme.Active.Blue, 10, 6); lipgloss.Height(got) != 1 {
		t.Error("narrow chart should fall back to a sparkline")
	}
}

func TestProfileChartNotesRange(t *testing.T) {
	s := model.Series{X: []int{0, 1}, Y: []float64{1, 2}, Min: []float64{0.5, 1}, Max: []float64{2, 4}}
	out := ProfileChart(s, func(x int) string { return "h" }, theme.Active.Blue, 40, 4)
	if !strings.Contains(out, "min-max range 3.0") {
		t.Errorf("missing range note:\n%s", out)
	}
}
