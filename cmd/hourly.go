package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/pipeline"

	"github.com/spf13/cobra"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Hourly statistics, time-of-day bands and hour profile",
	RunE:  runHourly,
}

func init() {
	hourlyCmd.Flags().StringVar(&flagSection, "section", pipeline.SectionAll, `Period to show: "All data", "Winter" or "Summer"`)
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	r, err := buildReport()
	if err != nil {
		return err
	}

	s, err := findSection(r, flagSection)
	if err != nil {
		return err
	}

	printCompleteness(fmt.Sprintf("HOURLY USE  %s  %s", s.Name, filepath.Base(r.Source)), r)

	for _, title := range []string{pipeline.TableHourly, pipeline.NightBand.Title, pipeline.EveningBand.Title} {
		t, _ := s.Table(title)
		fmt.Println()
		if t.Len() == 0 {
			fmt.Printf("  %s: no data\n", title)
			continue
		}
		fmt.Print(cli.RenderTable(cli.TableFromModel(title+" (kWh)", t)))
	}

	// The hour-of-day profile is computed from every reading, not the
	// filtered set.
	if all, ok := r.Chart(pipeline.ChartAll); ok {
		for _, p := range all.Panels {
			if p.Title != pipeline.PanelHourly {
				continue
			}
			fmt.Println()
			fmt.Printf("  %s (mean kWh per hour)\n\n", p.Title)
			for _, series := range p.Series {
				fmt.Print(cli.RenderProfile(series, cli.FormatHour, 40))
				fmt.Println()
			}
		}
	}
	return nil
}
