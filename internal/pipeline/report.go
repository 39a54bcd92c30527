package pipeline

import (
	"github.com/theirongolddev/meterstat/internal/model"
)

// Section and table titles in report order.
const (
	SectionAll = "All data"

	TableYearly = "Yearly Use"
	TableDaily  = "Daily Use"
	TableHourly = "Hourly Use"
)

// Assemble builds the report bundle. Yearly totals come from full; every
// other table comes from filtered. Sections are "All data", "Winter" and
// "Summer" in that order.
func Assemble(full, filtered []model.Reading, c model.Completeness) model.Report {
	r := model.Report{
		Summary:      c.Narrative(),
		Completeness: c,
	}
	if len(full) > 0 {
		r.Kind = full[0].Kind.String()
	}

	r.Sections = []model.Section{
		BuildSection(SectionAll, full, filtered),
		BuildSection(Winter.Name, Winter.Filter(full), Winter.Filter(filtered)),
		BuildSection(Summer.Name, Summer.Filter(full), Summer.Filter(filtered)),
	}
	r.Charts = []model.Chart{
		AllChart(filtered, full),
		MonthsChart(filtered),
	}
	return r
}

// BuildSection computes the fixed table sequence for one period slice.
func BuildSection(name string, full, filtered []model.Reading) model.Section {
	return model.Section{
		Name: name,
		Tables: []model.NamedTable{
			{Title: TableYearly, Table: YearlyTotals(full)},
			{Title: TableDaily, Table: DailyStats(filtered)},
			{Title: TableHourly, Table: HourlyStats(filtered)},
			{Title: NightBand.Title, Table: NightBand.Totals(filtered)},
			{Title: EveningBand.Title, Table: EveningBand.Totals(filtered)},
		},
	}
}

// BuildReport audits a loaded export and assembles its report.
func BuildReport(res *LoadResult, noDelete bool) model.Report {
	filtered, c := Split(res.Readings, noDelete)
	r := Assemble(res.Readings, filtered, c)
	r.Source = res.Path
	r.Kind = res.Kind.String()
	return r
}
