package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasons(t *testing.T) {
	for m := 1; m <= 12; m++ {
		wantWinter := m == 12 || m == 1 || m == 2
		wantSummer := m >= 6 && m <= 8
		assert.Equal(t, wantWinter, Winter.Contains(m), "winter month %d", m)
		assert.Equal(t, wantSummer, Summer.Contains(m), "summer month %d", m)
	}

	march := hourlyDays(day(2023, 3, 1), 1, 1)
	assert.Empty(t, Winter.Filter(march))
	assert.Empty(t, Summer.Filter(march))
	assert.Len(t, FilterMonths(march, 3), 24)
}

func TestHourProfile(t *testing.T) {
	// Two days: hour totals of 1.0 then 3.0.
	readings := append(hourlyDays(day(2023, 6, 1), 1, 1.0), hourlyDays(day(2023, 6, 2), 1, 3.0)...)
	readings = append(readings, hourlyDays(day(2024, 6, 1), 1, 2.0)...)

	series := HourProfile(readings)
	require.Len(t, series, 2)
	assert.Equal(t, 2023, series[0].Year)
	assert.Equal(t, "2023", series[0].Label)
	require.Len(t, series[0].X, 24)
	assert.Equal(t, 0, series[0].X[0])
	assert.Equal(t, 23, series[0].X[23])
	assert.InDelta(t, 2.0, series[0].Y[5], 1e-9)
	assert.InDelta(t, 1.0, series[0].Min[5], 1e-9)
	assert.InDelta(t, 3.0, series[0].Max[5], 1e-9)

	lower, upper := series[0].ErrorBars()
	assert.InDelta(t, 1.0, lower[5], 1e-9)
	assert.InDelta(t, 1.0, upper[5], 1e-9)

	assert.Equal(t, 2024, series[1].Year)
	assert.InDelta(t, 2.0, series[1].Y[0], 1e-9)
}

func TestDailyAndMonthlySeries(t *testing.T) {
	readings := hourlyDays(day(2023, 1, 30), 4, 0.5)

	daily := DailySeries(readings)
	require.Len(t, daily, 1)
	assert.Equal(t, []int{30, 31, 32, 33}, daily[0].X)
	assert.InDelta(t, 12, daily[0].Y[0], 1e-9)
	assert.False(t, daily[0].HasExtrema())

	monthly := MonthlySeries(readings)
	require.Len(t, monthly, 1)
	assert.Equal(t, []int{1, 2}, monthly[0].X)
	assert.InDelta(t, 24, monthly[0].Y[0], 1e-9)
	assert.InDelta(t, 24, monthly[0].Y[1], 1e-9)
}

func TestMonthlyDayProfile(t *testing.T) {
	readings := append(hourlyDays(day(2023, 2, 1), 1, 1.0), hourlyDays(day(2023, 2, 2), 1, 2.0)...)
	series := MonthlyDayProfile(readings)
	require.Len(t, series, 1)
	assert.Equal(t, []int{2}, series[0].X)
	assert.InDelta(t, 36, series[0].Y[0], 1e-9)
	assert.InDelta(t, 24, series[0].Min[0], 1e-9)
	assert.InDelta(t, 48, series[0].Max[0], 1e-9)
}

func TestMonthsChart_Panels(t *testing.T) {
	readings := hourlyDays(day(2023, 1, 1), 365, 1)
	chart := MonthsChart(readings)

	assert.Equal(t, ChartMonths, chart.Name)
	require.Len(t, chart.Panels, 14)
	assert.Equal(t, "Average by hour Month 1", chart.Panels[0].Title)
	assert.Equal(t, "Average by hour Month 12", chart.Panels[11].Title)
	assert.Equal(t, "Average by hour Winter", chart.Panels[12].Title)
	assert.Equal(t, "Average by hour Summer", chart.Panels[13].Title)
	for _, p := range chart.Panels {
		require.Len(t, p.Series, 1, p.Title)
		assert.InDelta(t, 1, p.Series[0].Y[12], 1e-9, p.Title)
	}
}

func TestAllChart_HourlyPanelUsesGivenSet(t *testing.T) {
	filtered := hourlyDays(day(2023, 1, 1), 1, 1.0)
	hourly := append(filtered, reading(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), 60, 3.0))

	chart := AllChart(filtered, hourly)
	require.Len(t, chart.Panels, 4)
	titles := []string{chart.Panels[0].Title, chart.Panels[1].Title, chart.Panels[2].Title, chart.Panels[3].Title}
	assert.Equal(t, []string{PanelDaily, PanelMonthly, PanelMonthlyDay, PanelHourly}, titles)

	assert.Len(t, chart.Panels[0].Series[0].X, 1, "daily panel comes from filtered")
	hour := chart.Panels[3].Series[0]
	assert.InDelta(t, 2.0, hour.Y[0], 1e-9, "hour 0 averages the two days of the hourly set")
	assert.InDelta(t, 3.0, hour.Max[0], 1e-9)
}

func TestSeries_YearOrder(t *testing.T) {
	readings := append(hourlyDays(day(2025, 1, 1), 1, 1), hourlyDays(day(2023, 1, 1), 1, 1)...)
	series := DailySeries(readings)
	require.Len(t, series, 2)
	assert.Equal(t, []int{2023, 2025}, []int{series[0].Year, series[1].Year})
}
