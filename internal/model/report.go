package model

import (
	"fmt"
	"strings"
)

const missingDataNote = "Days with missing data are found by adding up the recorded interval minutes of every day. " +
	"Around 1 to 20% of days are usually missing some hourly data, as smart meter data is lost from time to time, " +
	"particularly during power cuts."

// Completeness holds the missing-data audit of a record set.
type Completeness struct {
	TotalDays         int     `json:"total_days" yaml:"total_days"`
	MissingDays       int     `json:"missing_days" yaml:"missing_days"`
	MissingPercentage float64 `json:"missing_percentage" yaml:"missing_percentage"`
	IncompleteDays    []int   `json:"incomplete_days,omitempty" yaml:"incomplete_days,omitempty,flow"`
	NoDelete          bool    `json:"no_delete" yaml:"no_delete"`
	Removed           bool    `json:"removed" yaml:"removed"`
}

// Outcome is the one-line result of the audit.
func (c Completeness) Outcome() string {
	switch {
	case c.MissingDays == 0:
		return fmt.Sprintf("%d days. No missing data was found, all days were complete.", c.TotalDays)
	case c.Removed:
		return fmt.Sprintf("Removed %d days of %d days (%.0f%%) because of missing data.",
			c.MissingDays, c.TotalDays, c.MissingPercentage)
	default:
		return fmt.Sprintf("%d days of %d data days (%.0f%%) had missing data but were NOT REMOVED as nodelete option used.",
			c.MissingDays, c.TotalDays, c.MissingPercentage)
	}
}

// Narrative is the summary text carried into reports: how missing data is
// detected, followed by the audit outcome.
func (c Completeness) Narrative() string {
	var b strings.Builder
	b.WriteString(missingDataNote)
	b.WriteString("\n")
	b.WriteString(c.Outcome())
	return b.String()
}

// Series is one year's line of a chart panel. Min and Max are nil for
// plain value series.
type Series struct {
	Label string    `json:"label" yaml:"label"`
	Year  int       `json:"year" yaml:"year"`
	X     []int     `json:"x" yaml:"x,flow"`
	Y     []float64 `json:"y" yaml:"y,flow"`
	Min   []float64 `json:"min,omitempty" yaml:"min,omitempty,flow"`
	Max   []float64 `json:"max,omitempty" yaml:"max,omitempty,flow"`
}

// HasExtrema reports whether the series carries min/max bounds.
func (s Series) HasExtrema() bool {
	return len(s.Min) == len(s.Y) && len(s.Max) == len(s.Y) && len(s.Y) > 0
}

// ErrorBars converts the extrema into asymmetric offsets (mean-min, max-mean).
func (s Series) ErrorBars() (lower, upper []float64) {
	if !s.HasExtrema() {
		return nil, nil
	}
	lower = make([]float64, len(s.Y))
	upper = make([]float64, len(s.Y))
	for i, y := range s.Y {
		lower[i] = y - s.Min[i]
		upper[i] = s.Max[i] - y
	}
	return lower, upper
}

// Panel is a titled group of per-year series.
type Panel struct {
	Title  string   `json:"title" yaml:"title"`
	XLabel string   `json:"x_label" yaml:"x_label"`
	Series []Series `json:"series" yaml:"series"`
}

// Chart is a named bundle of panels handed to a chart renderer.
type Chart struct {
	Name   string  `json:"name" yaml:"name"`
	Panels []Panel `json:"panels" yaml:"panels"`
}

// Section is the fixed table sequence for one period slice.
type Section struct {
	Name   string       `json:"name" yaml:"name"`
	Tables []NamedTable `json:"tables" yaml:"tables"`
}

// Report is the complete output of the engine.
type Report struct {
	Source       string       `json:"source,omitempty" yaml:"source,omitempty"`
	Kind         string       `json:"kind" yaml:"kind"`
	Summary      string       `json:"summary" yaml:"summary"`
	Completeness Completeness `json:"completeness" yaml:"completeness"`
	Sections     []Section    `json:"sections" yaml:"sections"`
	Charts       []Chart      `json:"charts" yaml:"charts"`
}

// Section returns the section with the given name.
func (r Report) Section(name string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Chart returns the chart bundle with the given name.
func (r Report) Chart(name string) (Chart, bool) {
	for _, c := range r.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return Chart{}, false
}

// Table returns the named table of a section.
func (s Section) Table(title string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Title == title {
			return t.Table, true
		}
	}
	return Table{}, false
}
