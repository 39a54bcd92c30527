// Package model defines domain types for meter readings, aggregate tables and reports.
package model

import "time"

// SourceKind identifies the fuel a meter export was recorded for.
type SourceKind int

const (
	Electric SourceKind = iota
	Gas
)

func (k SourceKind) String() string {
	if k == Gas {
		return "gas"
	}
	return "electric"
}

// RawRecord is one row of a meter export before any parsing.
type RawRecord struct {
	Row            int // 1-based data row in the source sheet
	StartTimestamp string
	EndTimestamp   string
	RawValue       float64
}

// Reading is a normalized metering interval. All calendar fields are derived
// from Start in its own UTC offset.
type Reading struct {
	Kind      SourceKind
	EnergyUse float64 // kWh
	Start     time.Time
	End       time.Time

	DurationMinutes int

	Year       int
	Month      int
	DayOfMonth int
	Weekday    int // 0 = Monday
	Hour       int
	ISOWeek    int
	DayOfYear  int
}

// NewReading derives the calendar fields of an interval from its start instant.
func NewReading(kind SourceKind, energy float64, start, end time.Time) Reading {
	_, week := start.ISOWeek()
	return Reading{
		Kind:            kind,
		EnergyUse:       energy,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Year:            start.Year(),
		Month:           int(start.Month()),
		DayOfMonth:      start.Day(),
		Weekday:         (int(start.Weekday()) + 6) % 7,
		Hour:            start.Hour(),
		ISOWeek:         week,
		DayOfYear:       start.YearDay(),
	}
}

// DayKey returns year*1000 + day-of-year, a sortable identifier that is
// unique per calendar day across year boundaries.
func (r Reading) DayKey() int {
	return DayKey(r.Year, r.DayOfYear)
}

// DayKey builds a calendar day key.
func DayKey(year, dayOfYear int) int {
	return year*1000 + dayOfYear
}

// Field returns the value of a grouping field.
func (r Reading) Field(f Field) int {
	switch f {
	case FieldYear:
		return r.Year
	case FieldMonth:
		return r.Month
	case FieldDayOfMonth:
		return r.DayOfMonth
	case FieldWeekday:
		return r.Weekday
	case FieldHour:
		return r.Hour
	case FieldISOWeek:
		return r.ISOWeek
	case FieldDayOfYear:
		return r.DayOfYear
	case FieldDayKey:
		return r.DayKey()
	}
	return 0
}
