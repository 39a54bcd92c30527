package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/model"
)

// TimeLayout is the export timestamp format: ISO-8601 with a numeric
// offset, e.g. 2023-01-15T00:30:00+0000.
const TimeLayout = "2006-01-02T15:04:05-0700"

// ParseTimestamp parses a trimmed timestamp in exactly TimeLayout. The
// returned time keeps the offset written in the string. Colon offsets, "Z"
// and fractional seconds are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse tolerates a fractional second the layout does not name.
	if t.Format(TimeLayout) != s {
		return time.Time{}, fmt.Errorf("timestamp %q is not in %s form", s, TimeLayout)
	}
	return t, nil
}

// Normalize parses both timestamps of a raw record once and derives the
// reading. Parse failures and intervals that end before they start are fatal.
func Normalize(raw model.RawRecord, kind model.SourceKind, calorificFactor float64) (model.Reading, error) {
	start, err := ParseTimestamp(raw.StartTimestamp)
	if err != nil {
		return model.Reading{}, &ParseError{Row: raw.Row, Column: "start", Value: raw.StartTimestamp, Err: err}
	}
	end, err := ParseTimestamp(raw.EndTimestamp)
	if err != nil {
		return model.Reading{}, &ParseError{Row: raw.Row, Column: "end", Value: raw.EndTimestamp, Err: err}
	}
	if end.Before(start) {
		return model.Reading{}, &RowError{Row: raw.Row, Err: ErrNegativeDuration}
	}

	energy := config.EnergyUse(raw.RawValue, kind, calorificFactor)
	return model.NewReading(kind, energy, start, end), nil
}
