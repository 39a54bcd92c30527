package components

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the loaded file and filtering mode on the right.
func RenderStatusBar(width int, source string, noDelete bool, loadTime string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [n]o-delete  [q]uit"
	mode := "incomplete days removed"
	if noDelete {
		mode = "all days kept"
	}
	right := fmt.Sprintf("%s · %s", filepath.Base(source), mode)
	if loadTime != "" {
		right += fmt.Sprintf(" · %s", loadTime)
	}
	right += " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
