package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/meterstat/internal/model"
)

func TestAssemble_FullYear(t *testing.T) {
	full := hourlyDays(day(2023, 1, 1), 365, 1.0)
	filtered, c := Split(full, false)
	r := Assemble(full, filtered, c)

	assert.Equal(t, "electric", r.Kind)
	assert.Contains(t, r.Summary, "365 days. No missing data was found")

	var names []string
	for _, s := range r.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"All data", "Winter", "Summer"}, names)

	all, ok := r.Section(SectionAll)
	require.True(t, ok)
	var titles []string
	for _, nt := range all.Tables {
		titles = append(titles, nt.Title)
	}
	assert.Equal(t, []string{
		"Yearly Use", "Daily Use", "Hourly Use",
		"Night Use 00:00 - 06:00", "Total use 16:00 to 18:00",
	}, titles)

	yearly, _ := all.Table(TableYearly)
	assert.InDelta(t, 8760, yearly.Rows[0].Sum, 1e-9)
	daily, _ := all.Table(TableDaily)
	assert.InDelta(t, 24, daily.Rows[0].Mean, 1e-9)

	winter, _ := r.Section("Winter")
	wy, _ := winter.Table(TableYearly)
	assert.InDelta(t, float64((31+28+31)*24), wy.Rows[0].Sum, 1e-9)
	summer, _ := r.Section("Summer")
	sy, _ := summer.Table(TableYearly)
	assert.InDelta(t, float64((30+31+31)*24), sy.Rows[0].Sum, 1e-9)

	require.Len(t, r.Charts, 2)
	assert.Equal(t, ChartAll, r.Charts[0].Name)
	assert.Equal(t, ChartMonths, r.Charts[1].Name)
}

func TestAssemble_YearlyFromFullOthersFromFiltered(t *testing.T) {
	// Day 1 complete at 1 kWh/h, day 2 has twelve hours at 2 kWh/h.
	full := append(hourlyDays(day(2023, 3, 1), 1, 1.0), hourlyDays(day(2023, 3, 2), 1, 2.0)[:12]...)
	filtered, c := Split(full, false)
	require.True(t, c.Removed)

	r := Assemble(full, filtered, c)
	all, _ := r.Section(SectionAll)

	yearly, _ := all.Table(TableYearly)
	assert.InDelta(t, 48, yearly.Rows[0].Sum, 1e-9)
	daily, _ := all.Table(TableDaily)
	assert.InDelta(t, 24, daily.Rows[0].Mean, 1e-9)
	assert.Equal(t, 1, daily.Rows[0].Count)
	night, _ := all.Table(NightBand.Title)
	assert.InDelta(t, 7, night.Rows[0].Sum, 1e-9)

	chart, _ := r.Chart(ChartAll)
	hour := chart.Panels[3].Series[0]
	assert.InDelta(t, 1.5, hour.Y[0], 1e-9, "hour panel is built from the full set")
	assert.Len(t, chart.Panels[0].Series[0].X, 1, "daily panel is built from the filtered set")
}

func TestAssemble_NoDeleteMatchesUnfiltered(t *testing.T) {
	full := append(hourlyDays(day(2023, 3, 1), 1, 1.0), hourlyDays(day(2023, 3, 2), 1, 2.0)[:12]...)
	filtered, c := Split(full, true)
	r := Assemble(full, filtered, c)

	all, _ := r.Section(SectionAll)
	daily, _ := all.Table(TableDaily)
	assert.InDelta(t, 24, daily.Rows[0].Mean, 1e-9)
	assert.Equal(t, 2, daily.Rows[0].Count)
	assert.Contains(t, r.Summary, "NOT REMOVED")
}

func TestAssemble_EmptySeason(t *testing.T) {
	full := hourlyDays(day(2023, 4, 1), 2, 1.0)
	filtered, c := Split(full, false)
	r := Assemble(full, filtered, c)

	winter, ok := r.Section("Winter")
	require.True(t, ok)
	for _, nt := range winter.Tables {
		assert.Equal(t, 0, nt.Table.Len(), nt.Title)
	}
}

func TestBuildReport(t *testing.T) {
	res := &LoadResult{
		Path:     "/tmp/export.csv",
		Kind:     model.Gas,
		Readings: hourlyDays(day(2023, 1, 1), 2, 1.0),
	}
	r := BuildReport(res, false)
	assert.Equal(t, "/tmp/export.csv", r.Source)
	assert.Equal(t, "gas", r.Kind)
	assert.Equal(t, 2, r.Completeness.TotalDays)
}
