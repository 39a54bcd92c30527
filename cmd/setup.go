package cmd

import (
	"fmt"

	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file values, not the flag overrides.
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := vals.Apply(&cfg); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `meterstat setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
