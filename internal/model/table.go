package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a calendar attribute readings can be grouped by.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDayOfMonth
	FieldWeekday
	FieldHour
	FieldISOWeek
	FieldDayOfYear
	FieldDayKey
)

var fieldNames = map[Field]string{
	FieldYear:       "year",
	FieldMonth:      "month",
	FieldDayOfMonth: "day",
	FieldWeekday:    "weekday",
	FieldHour:       "hour",
	FieldISOWeek:    "week",
	FieldDayOfYear:  "yearday",
	FieldDayKey:     "daykey",
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so exported tables carry field names.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(b []byte) error {
	for k, n := range fieldNames {
		if n == string(b) {
			*f = k
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", b)
}

// Op is a summary statistic over energy use.
type Op int

const (
	OpSum Op = iota
	OpMean
	OpMin
	OpMax
)

func (o Op) String() string {
	switch o {
	case OpSum:
		return "Sum"
	case OpMean:
		return "Mean"
	case OpMin:
		return "Min"
	case OpMax:
		return "Max"
	}
	return "?"
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(o.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	for _, op := range []Op{OpSum, OpMean, OpMin, OpMax} {
		if strings.EqualFold(op.String(), string(b)) {
			*o = op
			return nil
		}
	}
	return fmt.Errorf("unknown op %q", b)
}

// Row is one group of an aggregate table.
type Row struct {
	Key   []int   `json:"key" yaml:"key,flow"`
	Count int     `json:"count" yaml:"count"`
	Sum   float64 `json:"sum" yaml:"sum"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Value returns the statistic for op.
func (r Row) Value(op Op) float64 {
	switch op {
	case OpMean:
		return r.Mean
	case OpMin:
		return r.Min
	case OpMax:
		return r.Max
	}
	return r.Sum
}

// Table maps grouping-key tuples to summaries of energy use.
// Rows are ordered lexicographically by key.
type Table struct {
	Keys []Field `json:"keys" yaml:"keys,flow"`
	Ops  []Op    `json:"ops" yaml:"ops,flow"`
	Rows []Row   `json:"rows" yaml:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// KeyIndex returns the position of f in the table key, or -1.
func (t Table) KeyIndex(f Field) int {
	for i, k := range t.Keys {
		if k == f {
			return i
		}
	}
	return -1
}

// Headers returns column names: key fields followed by requested ops.
func (t Table) Headers() []string {
	h := make([]string, 0, len(t.Keys)+len(t.Ops))
	for _, k := range t.Keys {
		h = append(h, k.String())
	}
	for _, op := range t.Ops {
		h = append(h, op.String())
	}
	return h
}

// Lookup returns the row with the given key.
func (t Table) Lookup(key ...int) (Row, bool) {
	for _, r := range t.Rows {
		if equalKey(r.Key, key) {
			return r, true
		}
	}
	return Row{}, false
}

// NamedTable is a titled aggregate table in a report section.
type NamedTable struct {
	Title string `json:"title" yaml:"title"`
	Table Table  `json:"table" yaml:"table"`
}

func equalKey(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// KeyString renders a key as "2023/4".
func KeyString(key []int) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, "/")
}
