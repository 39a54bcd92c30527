package pipeline

import (
	"github.com/samber/lo"

	"github.com/theirongolddev/meterstat/internal/model"
)

// Season is a named set of calendar months.
type Season struct {
	Name   string
	Months []int
}

var (
	Winter = Season{Name: "Winter", Months: []int{12, 1, 2}}
	Summer = Season{Name: "Summer", Months: []int{6, 7, 8}}
)

// Contains reports whether month (1-12) falls in the season.
func (s Season) Contains(month int) bool {
	return lo.Contains(s.Months, month)
}

// Filter returns the readings that start in one of the season's months.
func (s Season) Filter(readings []model.Reading) []model.Reading {
	return FilterMonths(readings, s.Months...)
}

// FilterMonths returns a new slice holding the readings whose month is one
// of months.
func FilterMonths(readings []model.Reading, months ...int) []model.Reading {
	return lo.Filter(readings, func(r model.Reading, _ int) bool {
		return lo.Contains(months, r.Month)
	})
}
