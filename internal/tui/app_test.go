package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// loadedResult is two days of hourly electric readings where the second
// day is missing its last hour.
func loadedResult() *pipeline.LoadResult {
	start := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	var readings []model.Reading
	for h := 0; h < 47; h++ {
		from := start.Add(time.Duration(h) * time.Hour)
		readings = append(readings, model.NewReading(model.Electric, 1, from, from.Add(time.Hour)))
	}
	return &pipeline.LoadResult{
		Path:      "/tmp/export.csv",
		Kind:      model.Electric,
		Readings:  readings,
		TotalRows: len(readings),
	}
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := App{width: 140, height: 50, loadSub: make(chan tea.Msg, 1)}
	m, _ := a.Update(DataLoadedMsg{Result: loadedResult(), LoadTime: time.Second})
	return m.(App)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDataLoadedBuildsReport(t *testing.T) {
	a := loadedApp(t)
	require.True(t, a.loaded)

	c := a.report.Completeness
	assert.Equal(t, 2, c.TotalDays)
	assert.Equal(t, 1, c.MissingDays)
	assert.True(t, c.Removed)
	assert.Len(t, a.filtered, 24)
	assert.Equal(t, "/tmp/export.csv", a.report.Source)
}

func TestNoDeleteToggleRecomputes(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(key("n"))
	a = m.(App)
	assert.True(t, a.noDelete)
	assert.Len(t, a.filtered, 47)
	assert.False(t, a.report.Completeness.Removed)

	m, _ = a.Update(key("n"))
	a = m.(App)
	assert.Len(t, a.filtered, 24)
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	a.scroll = 7

	m, _ := a.Update(key("u"))
	a = m.(App)
	assert.Equal(t, 3, a.activeTab)
	assert.Zero(t, a.scroll, "switching tabs resets scroll")

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a = m.(App)
	assert.Equal(t, 4, a.activeTab)

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a = m.(App)
	assert.Equal(t, 0, a.activeTab, "wraps around")
}

func TestLoadErrorView(t *testing.T) {
	a := App{width: 100, height: 30, path: "/tmp/bad.csv"}
	m, _ := a.Update(DataLoadedMsg{Err: assert.AnError})
	a = m.(App)

	view := a.View()
	assert.Contains(t, view, "Could not load bad.csv")
	assert.Contains(t, view, assert.AnError.Error())
}

func TestEveryTabRenders(t *testing.T) {
	a := loadedApp(t)
	for i := 0; i < 5; i++ {
		a.activeTab = i
		view := a.View()
		lines := strings.Split(view, "\n")
		assert.Len(t, lines, a.height, "tab %d fills the terminal", i)
	}
}

func TestScrollLinesClamps(t *testing.T) {
	s := "a\nb\nc\nd\ne"
	assert.Equal(t, "c\nd\ne", scrollLines(s, 10, 3))
	assert.Equal(t, "b\nc\nd\ne", scrollLines(s, 1, 3))
	assert.Equal(t, s, scrollLines(s, 4, 10))
}

func TestPanelLabel(t *testing.T) {
	assert.Equal(t, "Mar", panelLabel("Average by hour Month 3"))
	assert.Equal(t, "Winter", panelLabel("Average by hour Winter"))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "1 Mar 2024", dayLabel(2024061))
	assert.Equal(t, "31 Dec 2023", dayLabel(2023365))
}
