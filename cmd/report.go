package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/meterstat/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagXLSX   bool
	flagOutDir string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the PDF report (and optionally an Excel workbook)",
	Long: "Write <stem>.pdf next to the input file, where stem is the input name\n" +
		"with spaces and dots replaced by underscores.",
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagXLSX, "xlsx", false, "Also write an Excel workbook")
	reportCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Directory for report files (default: next to the input)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	r, err := buildReport()
	if err != nil {
		return err
	}

	outDir := appCfg.General.OutputDir
	if cmd.Flags().Changed("out-dir") {
		outDir = flagOutDir
	}
	writeXLSX := appCfg.General.WriteXLSX
	if cmd.Flags().Changed("xlsx") {
		writeXLSX = flagXLSX
	}

	pdfPath := report.OutputPath(r.Source, outDir, ".pdf")
	if err := report.WritePDF(r, pdfPath); err != nil {
		return err
	}
	logrus.WithField("path", pdfPath).Debug("pdf written")
	written := []string{pdfPath}

	if writeXLSX {
		xlsxPath := report.OutputPath(r.Source, outDir, ".xlsx")
		if err := report.WriteXLSX(r, xlsxPath); err != nil {
			return err
		}
		written = append(written, xlsxPath)
	}

	printCompleteness("REPORT", r)
	fmt.Println()
	for _, p := range written {
		fmt.Printf("  Wrote %s\n", p)
	}
	if !flagQuiet && r.Completeness.MissingDays > 0 && !r.Completeness.Removed {
		fmt.Fprintln(os.Stderr, "\n  Incomplete days were kept; daily and hourly figures include them.")
	}
	return nil
}
