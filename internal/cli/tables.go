package cli

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/meterstat/internal/model"
)

// FormatKey renders one key column of an aggregate row.
func FormatKey(f model.Field, v int) string {
	switch f {
	case model.FieldWeekday:
		return FormatDayOfWeek(v)
	case model.FieldHour:
		return FormatHour(v)
	case model.FieldMonth:
		return FormatMonth(v)
	}
	return strconv.Itoa(v)
}

// ColumnName turns a key field into a table heading, e.g. "yearday" -> "Yearday".
func ColumnName(f model.Field) string {
	s := f.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TableFromModel converts an aggregate table into a renderable one. Key
// columns are written as integers or calendar names, statistics with one
// decimal place.
func TableFromModel(title string, t model.Table) Table {
	out := Table{Title: title, KeyCols: len(t.Keys)}
	for _, k := range t.Keys {
		out.Headers = append(out.Headers, ColumnName(k))
	}
	for _, op := range t.Ops {
		out.Headers = append(out.Headers, op.String())
	}

	for _, r := range t.Rows {
		row := make([]string, 0, len(out.Headers))
		for i, k := range t.Keys {
			row = append(row, FormatKey(k, r.Key[i]))
		}
		for _, op := range t.Ops {
			row = append(row, FormatEnergy(r.Value(op)))
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// RenderSection renders every table of a report section under its title.
func RenderSection(s model.Section) string {
	var b strings.Builder
	b.WriteString(RenderTitle(s.Name))
	b.WriteString("\n")
	for _, nt := range s.Tables {
		b.WriteString("\n")
		b.WriteString(RenderTable(TableFromModel(nt.Title, nt.Table)))
	}
	return b.String()
}

// RenderProfile renders one series of an hour or month profile as a bar
// per x value, scaled to the largest mean in the series.
func RenderProfile(s model.Series, label func(int) string, width int) string {
	maxVal := 0.0
	for _, y := range s.Y {
		if y > maxVal {
			maxVal = y
		}
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(s.Label))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(RenderSparkline(s.Y)))
	b.WriteString("\n")
	for i, x := range s.X {
		b.WriteString(RenderHorizontalBar(label(x), s.Y[i], maxVal, width))
		b.WriteString("\n")
	}
	return b.String()
}
