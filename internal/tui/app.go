// Package tui provides the interactive Bubble Tea report viewer for meterstat.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
	"github.com/theirongolddev/meterstat/internal/tui/components"
	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// DataLoadedMsg is sent when the export has been read and normalized.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports row normalization progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	result   *pipeline.LoadResult
	report   model.Report
	filtered []model.Reading
	yearly   model.Table // yearly totals of the filtered set, for band shares
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int
	noDelete  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	// Loading, channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	path string
	opts pipeline.LoadOptions
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	scrollOverhead    = 4 // header + status bar
	minHalfPageScroll = 1
	minContentHeight  = 5
)

// loadConfigOrDefault loads config, returning defaults on error so the
// viewer can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Debug("using default config")
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the viewer for one export file.
func NewApp(path string, opts pipeline.LoadOptions, noDelete bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		path:      path,
		opts:      opts,
		noDelete:  noDelete,
		needSetup: !config.Exists(),
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.path, a.opts, a.loadSub),
		a.spinner.Tick,
	)
}

// recompute re-runs the audit and report assembly for the current
// no-delete mode. Loading is not repeated.
func (a *App) recompute() {
	if a.result == nil {
		return
	}
	filtered, c := pipeline.Split(a.result.Readings, a.noDelete)
	a.filtered = filtered
	a.yearly = pipeline.YearlyTotals(filtered)
	a.report = pipeline.Assemble(a.result.Readings, filtered, c)
	a.report.Source = a.result.Path
	a.report.Kind = a.result.Kind.String()
	a.scroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			a.scrollBy(3)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.setTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup form intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" || key == "esc" {
			return a, tea.Quit
		}
		if a.loadErr != nil {
			return a, nil
		}

		halfPage := max((a.height-scrollOverhead)/2, minHalfPageScroll)
		switch key {
		case "n":
			a.noDelete = !a.noDelete
			a.recompute()
		case "left", "shift+tab":
			a.setTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			a.setTab((a.activeTab + 1) % len(components.Tabs))
		case "j", "down":
			a.scrollBy(1)
		case "k", "up":
			a.scrollBy(-1)
		case "ctrl+d", "pgdown":
			a.scrollBy(halfPage)
		case "ctrl+u", "pgup":
			a.scrollBy(-halfPage)
		case "g", "home":
			a.scroll = 0
		default:
			if r := []rune(key); len(r) == 1 {
				if tab := components.TabIdxByKey(r[0]); tab >= 0 {
					a.setTab(tab)
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		a.result = msg.Result
		a.recompute()

		if a.needSetup && a.loadErr == nil {
			a.setupVals = NewSetupValues(loadConfigOrDefault())
			a.setupForm = NewSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			logrus.WithError(err).Warn("saving setup config")
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// saveSetupConfig persists the form answers and applies the ones that
// affect the open report.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	if cfg.General.NoDelete != a.noDelete {
		a.noDelete = cfg.General.NoDelete
		a.recompute()
	}
	return config.Save(cfg)
}

func (a *App) setTab(i int) {
	if i != a.activeTab {
		a.activeTab = i
		a.scroll = 0
	}
}

// scrollBy moves the content offset. The upper bound is applied when
// the view is rendered, where the content height is known.
func (a *App) scrollBy(n int) {
	a.scroll = max(a.scroll+n, 0)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  meterstat needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ meterstat"))
	b.WriteString(subtitleStyle.Render(" · " + filepath.Base(a.path)))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := max(min(40, a.width-30), 20)
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Normalizing readings\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Reading export..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(a.width-4, 90))
	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := titleStyle.Render("Could not load "+filepath.Base(a.path)) + "\n\n" +
		textStyle.Render(a.loadErr.Error()) + "\n\n" +
		dimStyle.Render("Press q to quit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	groups := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"s a w u h", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll"},
			{"^d ^u", "Half-page scroll"},
			{"g", "Back to top"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n", "Toggle removal of incomplete days"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(g.title))
		b.WriteString("\n")
		for _, bind := range g.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar plus a line describing the loaded data
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	c := a.report.Completeness
	info := pillStyle.Render(" ") +
		accentStyle.Render(a.report.Kind) +
		pillStyle.Render(" │ ") +
		accentStyle.Render(cli.FormatNumber(int64(len(a.filtered)))) +
		pillStyle.Render(" readings │ ") +
		accentStyle.Render(fmt.Sprintf("%d/%d", c.MissingDays, c.TotalDays)) +
		pillStyle.Render(" days missing data ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(info)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.report.Source, a.noDelete, fmt.Sprintf("%.1fs", a.loadTime.Seconds()))

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderSummaryTab(cw)
	case 1, 2, 3:
		content = a.renderSectionTab(components.Tabs[a.activeTab].Name, cw)
	case 4:
		content = a.renderHoursTab(cw)
	}

	// 5. Scroll, truncate and pad to exactly contentH lines
	content = scrollLines(content, a.scroll, contentH)
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd starts loading in a background goroutine. It streams
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(path string, opts pipeline.LoadOptions, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send: a skipped update is caught up by the next one.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			res, err := pipeline.Load(path, opts, progressFn)
			sub <- DataLoadedMsg{Result: res, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// scrollLines drops the first offset lines, clamped so the last page
// stays filled.
func scrollLines(s string, offset, height int) string {
	lines := strings.Split(s, "\n")
	offset = min(offset, max(len(lines)-height, 0))
	if offset <= 0 {
		return s
	}
	return strings.Join(lines[offset:], "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
