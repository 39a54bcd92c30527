package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form. The form
// binds to its fields by pointer.
type SetupValues struct {
	Theme     string
	NoDelete  bool
	WriteXLSX bool
	Calorific string
	OutputDir string
}

// NewSetupValues seeds the form with the current configuration.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		Theme:     cfg.Appearance.Theme,
		NoDelete:  cfg.General.NoDelete,
		WriteXLSX: cfg.General.WriteXLSX,
		Calorific: strconv.FormatFloat(cfg.Energy.CalorificFactor, 'f', -1, 64),
		OutputDir: cfg.General.OutputDir,
	}
}

// NewSetupForm builds the first-run form used by both the viewer and the
// setup command.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to meterstat").
				Description("Reports on smart meter interval exports.\n\nA few defaults first. They are saved to\n"+config.Path()),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Keep days with missing data?").
				Description("By default days whose intervals do not add up to 24 hours are removed.").
				Affirmative("Keep").
				Negative("Remove").
				Value(&vals.NoDelete),
			huh.NewConfirm().
				Title("Write an Excel workbook next to each PDF report?").
				Value(&vals.WriteXLSX),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gas calorific factor").
				Description("kWh per cubic metre of gas.").
				Value(&vals.Calorific).
				Validate(validateFactor),
			huh.NewInput().
				Title("Report directory").
				Placeholder("next to the input file").
				Value(&vals.OutputDir),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func validateFactor(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	factor, err := strconv.ParseFloat(strings.TrimSpace(v.Calorific), 64)
	if err != nil {
		return fmt.Errorf("calorific factor %q: %w", v.Calorific, err)
	}
	cfg.Appearance.Theme = v.Theme
	cfg.General.NoDelete = v.NoDelete
	cfg.General.WriteXLSX = v.WriteXLSX
	cfg.General.OutputDir = strings.TrimSpace(v.OutputDir)
	cfg.Energy.CalorificFactor = factor
	return cfg.Validate()
}
