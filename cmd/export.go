package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/theirongolddev/meterstat/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the report data as YAML or JSON",
	Long: "Write the assembled report (completeness, section tables and chart\n" +
		"series) for use by other tools. Use --out - for stdout.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or json")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Output file (default: <stem>.<format> next to the input, - for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := report.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	r, err := buildReport()
	if err != nil {
		return err
	}

	if flagOut == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := report.Encode(w, r, format); err != nil {
			return err
		}
		return w.Flush()
	}

	path := flagOut
	if path == "" {
		path = report.OutputPath(r.Source, appCfg.General.OutputDir, format.Ext())
	}
	f, err := os.Create(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := report.Encode(f, r, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", path)
	}
	return f.Close()
}
