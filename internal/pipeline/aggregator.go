// Package pipeline turns normalized readings into completeness audits,
// aggregate tables, chart series and the assembled report.
package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/theirongolddev/meterstat/internal/model"
)

// Band is an inclusive range of hours summed into one total per year.
type Band struct {
	Title string
	From  int
	To    int
}

var (
	NightBand   = Band{Title: "Night Use 00:00 - 06:00", From: 0, To: 6}
	EveningBand = Band{Title: "Total use 16:00 to 18:00", From: 16, To: 18}
)

var (
	dailyKeys  = []model.Field{model.FieldYear, model.FieldDayOfYear, model.FieldWeekday, model.FieldDayOfMonth, model.FieldMonth}
	hourlyKeys = []model.Field{model.FieldYear, model.FieldDayOfYear, model.FieldWeekday, model.FieldHour}
	yearKey    = []model.Field{model.FieldYear}
	statOps    = []model.Op{model.OpMean, model.OpMax, model.OpMin}
)

type accumulator struct {
	key   []int
	count int
	sum   float64
	min   float64
	max   float64
}

func (a *accumulator) add(v float64) {
	if a.count == 0 {
		a.min, a.max = v, v
	} else {
		a.min = math.Min(a.min, v)
		a.max = math.Max(a.max, v)
	}
	a.count++
	a.sum += v
}

// collapse groups n observations by the key returned from at and
// summarizes each group. Rows come back sorted by key.
func collapse(keys []model.Field, ops []model.Op, n int, at func(i int, key []int) float64) model.Table {
	groups := make(map[string]*accumulator)
	for i := 0; i < n; i++ {
		key := make([]int, len(keys))
		v := at(i, key)
		id := model.KeyString(key)
		acc, ok := groups[id]
		if !ok {
			acc = &accumulator{key: key}
			groups[id] = acc
		}
		acc.add(v)
	}

	t := model.Table{Keys: keys, Ops: ops}
	if len(groups) == 0 {
		return t
	}
	t.Rows = make([]model.Row, 0, len(groups))
	for _, acc := range groups {
		t.Rows = append(t.Rows, model.Row{
			Key:   acc.key,
			Count: acc.count,
			Sum:   acc.sum,
			Mean:  acc.sum / float64(acc.count),
			Min:   acc.min,
			Max:   acc.max,
		})
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		return lessKey(t.Rows[i].Key, t.Rows[j].Key)
	})
	return t
}

func lessKey(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Aggregate groups readings by the given calendar fields and summarizes
// their energy use. ops selects the statistics a renderer should show;
// every row carries all of them.
func Aggregate(readings []model.Reading, keys []model.Field, ops ...model.Op) model.Table {
	return collapse(keys, ops, len(readings), func(i int, key []int) float64 {
		for k, f := range keys {
			key[k] = readings[i].Field(f)
		}
		return readings[i].EnergyUse
	})
}

// Regroup collapses an aggregate table a second time. Every input row
// contributes its Sum as one observation, so a statistic over a regrouped
// table is a statistic over the first-stage totals. keys must be a subset
// of t.Keys.
func Regroup(t model.Table, keys []model.Field, ops ...model.Op) model.Table {
	idx := make([]int, len(keys))
	for k, f := range keys {
		idx[k] = t.KeyIndex(f)
		if idx[k] < 0 {
			panic(fmt.Sprintf("pipeline: regroup key %s not in table keys %v", f, t.Keys))
		}
	}
	return collapse(keys, ops, len(t.Rows), func(i int, key []int) float64 {
		for k, j := range idx {
			key[k] = t.Rows[i].Key[j]
		}
		return t.Rows[i].Sum
	})
}

// YearlyTotals sums energy use per year.
func YearlyTotals(readings []model.Reading) model.Table {
	return Aggregate(readings, yearKey, model.OpSum)
}

// DailyTotals sums energy use per calendar day.
func DailyTotals(readings []model.Reading) model.Table {
	return Aggregate(readings, dailyKeys, model.OpSum)
}

// DailyStats is the mean, max and min of the daily totals of each year.
func DailyStats(readings []model.Reading) model.Table {
	return Regroup(DailyTotals(readings), yearKey, statOps...)
}

// HourlyTotals sums energy use per clock hour of every day. Readings that
// share an hour are added together before any statistic is taken.
func HourlyTotals(readings []model.Reading) model.Table {
	return Aggregate(readings, hourlyKeys, model.OpSum)
}

// HourlyStats is the mean, max and min of the hourly totals of each year.
func HourlyStats(readings []model.Reading) model.Table {
	return Regroup(HourlyTotals(readings), yearKey, statOps...)
}

// BandTotals sums the hourly totals with from <= hour <= to per year.
func BandTotals(readings []model.Reading, from, to int) model.Table {
	hourly := HourlyTotals(readings)
	hi := hourly.KeyIndex(model.FieldHour)
	hourly.Rows = lo.Filter(hourly.Rows, func(r model.Row, _ int) bool {
		return r.Key[hi] >= from && r.Key[hi] <= to
	})
	return Regroup(hourly, yearKey, model.OpSum)
}

// Totals applies the band to readings.
func (b Band) Totals(readings []model.Reading) model.Table {
	return BandTotals(readings, b.From, b.To)
}
