package source

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/model"
)

func TestParseTimestamp_KeepsOffset(t *testing.T) {
	ts, err := ParseTimestamp("  2023-06-15T23:30:00+0100 \t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, off := ts.Zone(); off != 3600 {
		t.Errorf("offset = %ds, want 3600", off)
	}
	if ts.Hour() != 23 || ts.Day() != 15 {
		t.Errorf("local fields = day %d hour %d, want day 15 hour 23", ts.Day(), ts.Hour())
	}
	want := time.Date(2023, 6, 15, 22, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("instant = %v, want %v", ts.UTC(), want)
	}
}

func TestParseTimestamp_OnlyCompactOffset(t *testing.T) {
	for _, s := range []string{
		"2023-06-15T23:30:00+01:00",
		"2023-06-15T23:30:00Z",
		"2023-06-15T23:30:00.999+0100",
		"2023-06-15T23:30:00,5+0100",
	} {
		if ts, err := ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) = %v, want error", s, ts)
		}
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	for _, s := range []string{
		"", "2023-06-15", "2023-06-15 23:30:00", "15/06/2023 23:30", "2023-13-01T00:00:00+0000",
		"2023-06-15T23:30:00", "2023-06-15T23:30:00+01", "2023-06-15T23:30:00.5Z",
	} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) succeeded, want error", s)
		}
	}
}

func TestNormalize_DerivesCalendarFields(t *testing.T) {
	raw := model.RawRecord{
		Row:            7,
		StartTimestamp: " 2024-12-31T23:30:00+0000",
		EndTimestamp:   " 2025-01-01T00:00:00+0000",
		RawValue:       0.4,
	}
	r, err := Normalize(raw, model.Electric, config.DefaultCalorificFactor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Year != 2024 || r.Month != 12 || r.DayOfMonth != 31 || r.Hour != 23 {
		t.Errorf("fields = %d-%d-%d h%d, want 2024-12-31 h23", r.Year, r.Month, r.DayOfMonth, r.Hour)
	}
	if r.DayOfYear != 366 {
		t.Errorf("DayOfYear = %d, want 366 (leap year)", r.DayOfYear)
	}
	if r.Weekday != 1 { // Tuesday
		t.Errorf("Weekday = %d, want 1 (Tuesday, Monday=0)", r.Weekday)
	}
	if r.ISOWeek != 1 {
		t.Errorf("ISOWeek = %d, want 1", r.ISOWeek)
	}
	if r.DayKey() != 2024366 {
		t.Errorf("DayKey = %d, want 2024366", r.DayKey())
	}
	if r.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %d, want 30", r.DurationMinutes)
	}
	if r.EnergyUse != 0.4 {
		t.Errorf("EnergyUse = %v, want 0.4", r.EnergyUse)
	}
}

func TestNormalize_Gas(t *testing.T) {
	raw := model.RawRecord{
		StartTimestamp: "2023-01-01T00:00:00+0000",
		EndTimestamp:   "2023-01-01T00:30:00+0000",
		RawValue:       10.0,
	}
	r, err := Normalize(raw, model.Gas, config.DefaultCalorificFactor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r.EnergyUse-113.627) > 1e-3 {
		t.Errorf("EnergyUse = %.4f, want ≈113.627", r.EnergyUse)
	}
	if r.Kind != model.Gas {
		t.Errorf("Kind = %v, want gas", r.Kind)
	}
}

func TestNormalize_TruncatesSubMinute(t *testing.T) {
	raw := model.RawRecord{
		StartTimestamp: "2023-01-01T00:00:00+0000",
		EndTimestamp:   "2023-01-01T00:29:59+0000",
	}
	r, err := Normalize(raw, model.Electric, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 29 {
		t.Errorf("DurationMinutes = %d, want 29", r.DurationMinutes)
	}
}

func TestNormalize_MultiDayInterval(t *testing.T) {
	raw := model.RawRecord{
		StartTimestamp: "2023-01-01T00:00:00+0000",
		EndTimestamp:   "2023-01-02T01:00:00+0000",
	}
	r, err := Normalize(raw, model.Electric, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 1500 {
		t.Errorf("DurationMinutes = %d, want 1500", r.DurationMinutes)
	}
}

func TestNormalize_NegativeDurationRejected(t *testing.T) {
	raw := model.RawRecord{
		Row:            3,
		StartTimestamp: "2023-03-26T01:30:00+0100",
		EndTimestamp:   "2023-03-26T00:00:00+0000",
	}
	_, err := Normalize(raw, model.Electric, 1)
	if !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("err = %v, want ErrNegativeDuration", err)
	}
}

func TestNormalize_ParseErrorNamesRow(t *testing.T) {
	raw := model.RawRecord{
		Row:            42,
		StartTimestamp: "2023-01-01T00:00:00+0000",
		EndTimestamp:   "yesterday",
	}
	_, err := Normalize(raw, model.Electric, 1)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Row != 42 || pe.Column != "end" {
		t.Errorf("ParseError = %+v, want row 42 column end", pe)
	}
}

// FuzzParseTimestamp checks the parser never panics and that accepted
// strings are exactly their own TimeLayout rendering.
func FuzzParseTimestamp(f *testing.F) {
	f.Add("2023-01-15T00:30:00+0000")
	f.Add(" 2023-01-15T00:30:00-0500 ")
	f.Add("2023-01-15T00:30:00Z")
	f.Add("2023-01-15T00:30:00.25+0000")
	f.Add("not a time")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		ts, err := ParseTimestamp(s)
		if err != nil {
			return
		}
		if got := ts.Format(TimeLayout); got != strings.TrimSpace(s) {
			t.Fatalf("accepted %q but it formats as %q", s, got)
		}
		again, err := ParseTimestamp(ts.Format(TimeLayout))
		if err != nil {
			t.Fatalf("reformatted %q failed to parse: %v", ts.Format(TimeLayout), err)
		}
		if !again.Equal(ts) {
			t.Fatalf("round trip changed instant: %v -> %v", ts, again)
		}
	})
}
