package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagSection string

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily use statistics and monthly totals",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&flagSection, "section", pipeline.SectionAll, `Period to show: "All data", "Winter" or "Summer"`)
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	r, err := buildReport()
	if err != nil {
		return err
	}

	s, err := findSection(r, flagSection)
	if err != nil {
		return err
	}

	printCompleteness(fmt.Sprintf("DAILY USE  %s  %s", s.Name, filepath.Base(r.Source)), r)
	fmt.Println()

	daily, _ := s.Table(pipeline.TableDaily)
	if daily.Len() == 0 {
		fmt.Println("  No data for this period.")
		return nil
	}
	fmt.Print(cli.RenderTable(cli.TableFromModel(pipeline.TableDaily+" (kWh per day)", daily)))

	// Monthly totals as bars, one block per year
	if all, ok := r.Chart(pipeline.ChartAll); ok {
		for _, p := range all.Panels {
			if p.Title != pipeline.PanelMonthly {
				continue
			}
			fmt.Println()
			fmt.Printf("  %s\n\n", p.Title)
			for _, series := range p.Series {
				fmt.Print(cli.RenderProfile(series, cli.FormatMonth, 40))
				fmt.Println()
			}
		}
	}
	return nil
}

// findSection matches a section name case-insensitively.
func findSection(r model.Report, name string) (model.Section, error) {
	for _, s := range r.Sections {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return model.Section{}, fmt.Errorf("unknown section %q (want one of %s)", name, strings.Join(names, ", "))
}
