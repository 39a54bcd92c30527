package pipeline

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/meterstat/internal/model"
)

// Chart and panel names shared with renderers.
const (
	ChartAll    = "All"
	ChartMonths = "Months"

	PanelDaily        = "Daily use"
	PanelMonthly      = "Monthly use"
	PanelMonthlyDay   = "Average daily use by month"
	PanelHourly       = "Average by hour"
	panelMonthFormat  = "Average by hour Month %d"
	panelSeasonFormat = "Average by hour %s"
)

var (
	yearHour     = []model.Field{model.FieldYear, model.FieldHour}
	yearDay      = []model.Field{model.FieldYear, model.FieldDayOfYear}
	yearMonth    = []model.Field{model.FieldYear, model.FieldMonth}
	yearMonthDay = []model.Field{model.FieldYear, model.FieldMonth, model.FieldDayOfYear}
	extremaOps   = []model.Op{model.OpMean, model.OpMin, model.OpMax}
)

// toSeries splits a (year, x) table into one series per year, in ascending
// year order. withExtrema selects Mean/Min/Max over Sum.
func toSeries(t model.Table, withExtrema bool) []model.Series {
	var out []model.Series
	for _, row := range t.Rows {
		year, x := row.Key[0], row.Key[1]
		if len(out) == 0 || out[len(out)-1].Year != year {
			out = append(out, model.Series{Label: strconv.Itoa(year), Year: year})
		}
		s := &out[len(out)-1]
		s.X = append(s.X, x)
		if withExtrema {
			s.Y = append(s.Y, row.Mean)
			s.Min = append(s.Min, row.Min)
			s.Max = append(s.Max, row.Max)
		} else {
			s.Y = append(s.Y, row.Sum)
		}
	}
	return out
}

// HourProfile is the mean, min and max hourly total for each hour of the
// day, one series per year.
func HourProfile(readings []model.Reading) []model.Series {
	return toSeries(Regroup(HourlyTotals(readings), yearHour, extremaOps...), true)
}

// DailySeries is the total use of every day of the year, one series per year.
func DailySeries(readings []model.Reading) []model.Series {
	return toSeries(Aggregate(readings, yearDay, model.OpSum), false)
}

// MonthlySeries is the total use of every month, one series per year.
func MonthlySeries(readings []model.Reading) []model.Series {
	return toSeries(Aggregate(readings, yearMonth, model.OpSum), false)
}

// MonthlyDayProfile is the mean, min and max daily total of every month,
// one series per year.
func MonthlyDayProfile(readings []model.Reading) []model.Series {
	days := Aggregate(readings, yearMonthDay, model.OpSum)
	return toSeries(Regroup(days, yearMonth, extremaOps...), true)
}

// AllChart builds the overview chart bundle. The daily, monthly and
// month-profile panels use filtered; the hour-of-day panel uses hourly,
// which callers pass explicitly.
func AllChart(filtered, hourly []model.Reading) model.Chart {
	return model.Chart{
		Name: ChartAll,
		Panels: []model.Panel{
			{Title: PanelDaily, XLabel: "Day of year", Series: DailySeries(filtered)},
			{Title: PanelMonthly, XLabel: "Month", Series: MonthlySeries(filtered)},
			{Title: PanelMonthlyDay, XLabel: "Month", Series: MonthlyDayProfile(filtered)},
			{Title: PanelHourly, XLabel: "Hour", Series: HourProfile(hourly)},
		},
	}
}

// MonthsChart builds one hour-of-day panel per calendar month followed by
// the winter and summer panels.
func MonthsChart(filtered []model.Reading) model.Chart {
	panels := make([]model.Panel, 0, 14)
	for m := 1; m <= 12; m++ {
		panels = append(panels, model.Panel{
			Title:  fmt.Sprintf(panelMonthFormat, m),
			XLabel: "Hour",
			Series: HourProfile(FilterMonths(filtered, m)),
		})
	}
	for _, s := range []Season{Winter, Summer} {
		panels = append(panels, model.Panel{
			Title:  fmt.Sprintf(panelSeasonFormat, s.Name),
			XLabel: "Hour",
			Series: HourProfile(s.Filter(filtered)),
		})
	}
	return model.Chart{Name: ChartMonths, Panels: panels}
}
