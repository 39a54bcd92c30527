package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/theirongolddev/meterstat/internal/cli"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Missing-data audit and yearly totals",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	r, err := buildReport()
	if err != nil {
		return err
	}

	printCompleteness(fmt.Sprintf("METER DATA  %s", filepath.Base(r.Source)), r)
	fmt.Println()

	all, _ := r.Section(pipeline.SectionAll)
	yearly, _ := all.Table(pipeline.TableYearly)
	if yearly.Len() == 0 {
		fmt.Println("  No readings found.")
		return nil
	}

	// One row per year: total use of each section and the change on the
	// previous year.
	headers := []string{"Year"}
	for _, s := range r.Sections {
		headers = append(headers, s.Name+" (kWh)")
	}
	headers = append(headers, "Change")

	rows := make([][]string, 0, yearly.Len())
	for i, y := range yearly.Rows {
		row := []string{strconv.Itoa(y.Key[0])}
		for _, s := range r.Sections {
			row = append(row, sectionTotal(s, y.Key[0]))
		}
		change := "-"
		if i > 0 {
			change = cli.FormatDelta(y.Sum, yearly.Rows[i-1].Sum)
		}
		rows = append(rows, append(row, change))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s use", r.Kind),
		Headers: headers,
		Rows:    rows,
		KeyCols: 1,
	}))

	daily, _ := all.Table(pipeline.TableDaily)
	if daily.Len() > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.TableFromModel(pipeline.TableDaily+" (kWh per day)", daily)))
	}
	return nil
}

func sectionTotal(s model.Section, year int) string {
	t, ok := s.Table(pipeline.TableYearly)
	if !ok {
		return "-"
	}
	row, ok := t.Lookup(year)
	if !ok {
		return "-"
	}
	return cli.FormatEnergy(row.Sum)
}
