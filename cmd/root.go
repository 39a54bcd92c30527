// Package cmd implements the meterstat CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagNoDelete  bool
	flagCalorific float64
	flagQuiet     bool
	flagVerbose   bool
)

// appCfg is the loaded config file with command-line overrides applied.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "meterstat",
	Short: "Smart meter data completeness and usage reports",
	Long: "Audit half-hourly smart meter exports for missing data and summarize\n" +
		"energy use by year, day, hour and season.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Meter export to read (.csv or .xlsx); opens a file picker when empty")
	rootCmd.PersistentFlags().BoolVarP(&flagNoDelete, "no-delete", "n", false, "Keep days with missing data")
	rootCmd.PersistentFlags().Float64Var(&flagCalorific, "calorific", config.DefaultCalorificFactor, "kWh per cubic metre of gas")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail to stderr")
}

// prepare sets up logging and merges the config file with flags that
// were given explicitly.
func prepare(cmd *cobra.Command, _ []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		// setup can repair a broken file
		if cmd != setupCmd {
			return err
		}
		logrus.WithError(err).Warn("ignoring unreadable config")
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("no-delete") {
		cfg.General.NoDelete = flagNoDelete
	}
	if flags.Changed("calorific") {
		if flagCalorific <= 0 {
			return fmt.Errorf("--calorific must be positive, got %v", flagCalorific)
		}
		cfg.Energy.CalorificFactor = flagCalorific
	}
	appCfg = cfg

	logrus.WithFields(logrus.Fields{
		"config":    config.Path(),
		"no_delete": cfg.General.NoDelete,
		"factor":    cfg.Energy.CalorificFactor,
	}).Debug("configuration")
	return nil
}

func loadOptions() pipeline.LoadOptions {
	return pipeline.LoadOptions{
		Markers:         appCfg.Columns,
		CalorificFactor: appCfg.Energy.CalorificFactor,
	}
}

// inputPath returns --file, or asks for one with a file picker.
func inputPath() (string, error) {
	if flagFile != "" {
		return flagFile, nil
	}

	var path string
	picker := huh.NewFilePicker().
		Title("Select a smart meter export").
		Description("CSV or Excel file downloaded from your supplier").
		AllowedTypes([]string{".csv", ".xlsx", ".xlsm"}).
		CurrentDirectory(".").
		Picking(true).
		Value(&path)
	if err := huh.NewForm(huh.NewGroup(picker)).Run(); err != nil {
		return "", fmt.Errorf("choosing input file: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("no input file given (use --file)")
	}
	return path, nil
}

// loadData is the shared loading path used by all report commands.
func loadData() (*pipeline.LoadResult, error) {
	path, err := inputPath()
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", filepath.Base(path))
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Normalizing [%d/%d]", current, total)
	}

	result, err := pipeline.Load(path, loadOptions(), progressFn)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr)
		}
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r  Loaded %s %s readings    \n",
			cli.FormatNumber(int64(len(result.Readings))),
			result.Kind,
		)
	}
	return result, nil
}

// buildReport loads the input and assembles its report.
func buildReport() (model.Report, error) {
	result, err := loadData()
	if err != nil {
		return model.Report{}, err
	}
	r := pipeline.BuildReport(result, appCfg.General.NoDelete)
	logrus.WithFields(logrus.Fields{
		"days":    r.Completeness.TotalDays,
		"missing": r.Completeness.MissingDays,
		"removed": r.Completeness.Removed,
	}).Debug("report assembled")
	return r, nil
}

// printCompleteness writes the audit outcome under a title.
func printCompleteness(title string, r model.Report) {
	c := r.Completeness
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderStatus(c.Outcome(), c.MissingDays > 0))
}
