package pipeline

import (
	"sort"

	"github.com/samber/lo"

	"github.com/theirongolddev/meterstat/internal/model"
)

// MinutesPerDay is the recorded duration a calendar day needs to be complete.
const MinutesPerDay = 24 * 60

// Audit sums the interval minutes of every calendar day and counts the days
// with less than MinutesPerDay recorded. Overlapping intervals are summed as-is.
func Audit(readings []model.Reading, noDelete bool) model.Completeness {
	c, _ := audit(readings, noDelete)
	return c
}

// Split audits readings and returns the record set used for statistics:
// only readings of complete days, or a copy of every reading when noDelete
// is set. The input slice is never modified.
func Split(readings []model.Reading, noDelete bool) ([]model.Reading, model.Completeness) {
	c, incomplete := audit(readings, noDelete)
	filtered := lo.Filter(readings, func(r model.Reading, _ int) bool {
		if !c.Removed {
			return true
		}
		_, bad := incomplete[r.DayKey()]
		return !bad
	})
	return filtered, c
}

func audit(readings []model.Reading, noDelete bool) (model.Completeness, map[int]struct{}) {
	byDay := lo.GroupBy(readings, func(r model.Reading) int { return r.DayKey() })

	c := model.Completeness{TotalDays: len(byDay), NoDelete: noDelete}
	incomplete := make(map[int]struct{})
	for day, rs := range byDay {
		minutes := lo.SumBy(rs, func(r model.Reading) int { return r.DurationMinutes })
		if minutes < MinutesPerDay {
			incomplete[day] = struct{}{}
			c.IncompleteDays = append(c.IncompleteDays, day)
		}
	}
	sort.Ints(c.IncompleteDays)

	c.MissingDays = len(incomplete)
	if c.TotalDays > 0 {
		c.MissingPercentage = float64(c.MissingDays) / float64(c.TotalDays) * 100
	}
	c.Removed = !noDelete && c.MissingDays > 0
	return c, incomplete
}
