package cmd

import (
	"fmt"

	"github.com/theirongolddev/meterstat/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.Path())
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Keep incomplete days: %v\n", cfg.General.NoDelete)
	fmt.Printf("    Write Excel workbook: %v\n", cfg.General.WriteXLSX)
	if cfg.General.OutputDir != "" {
		fmt.Printf("    Report directory:     %s\n", cfg.General.OutputDir)
	} else {
		fmt.Println("    Report directory:     next to the input file")
	}
	fmt.Println()

	fmt.Println("  [Columns]")
	fmt.Printf("    Start:         %q\n", cfg.Columns.Start)
	fmt.Printf("    End:           %q\n", cfg.Columns.End)
	fmt.Printf("    Consumption:   contains %q\n", cfg.Columns.Consumption)
	fmt.Printf("    Electric unit: %q\n", cfg.Columns.ElectricUnit)
	fmt.Println()

	fmt.Println("  [Energy]")
	fmt.Printf("    Calorific factor: %.4f kWh/m³", cfg.Energy.CalorificFactor)
	if cfg.Energy.CalorificFactor == config.DefaultCalorificFactor {
		fmt.Print(" (default)")
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `meterstat setup` to reconfigure.")
	return nil
}
