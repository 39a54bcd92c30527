package source

import (
	"errors"
	"fmt"
)

// Input validation errors. All of them end the run.
var (
	ErrEmptyInput               = errors.New("input contains no data rows")
	ErrMissingStartColumn       = errors.New("could not find the start time column")
	ErrMissingEndColumn         = errors.New("could not find the end time column")
	ErrMissingConsumptionColumn = errors.New("could not find the consumption column")
	ErrAmbiguousConsumption     = errors.New("more than one column matches the consumption marker")
	ErrUnsupportedFormat        = errors.New("unsupported file type")
	ErrNegativeDuration         = errors.New("interval ends before it starts")
)

// Sheet is the rectangular content of an input file.
type Sheet struct {
	Header []string
	Rows   [][]string
	// Lines holds the 1-based data-row number of each entry in Rows,
	// counting the blank rows that were dropped.
	Lines []int
}

// Columns holds the resolved column positions of a meter export.
type Columns struct {
	Start       int
	End         int
	Consumption int

	ConsumptionName string // raw header text, used to infer the fuel
}

// ParseError reports a timestamp that does not match TimeLayout.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %s timestamp %q does not match %s: %v", e.Row, e.Column, e.Value, TimeLayout, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RowError wraps a validation failure with its source row.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
