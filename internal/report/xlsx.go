package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/meterstat/internal/model"
)

const summarySheet = "Summary"

// ChartSheet names the workbook sheet holding a chart bundle's series.
func ChartSheet(name string) string {
	return "Chart " + name
}

// BuildXLSX writes the report into a workbook: a summary sheet, one sheet
// per section with its tables stacked, and one sheet per chart bundle.
func BuildXLSX(r model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: summarySheet}
	w.row("Energy analysis")
	if r.Source != "" {
		w.row("Source", r.Source)
	}
	w.row("Kind", r.Kind)
	w.skip()
	for _, line := range strings.Split(r.Summary, "\n") {
		w.row(line)
	}
	w.skip()
	c := r.Completeness
	w.row("Total days", c.TotalDays)
	w.row("Missing days", c.MissingDays)
	w.row("Missing %", c.MissingPercentage)
	w.row("Removed", c.Removed)
	for _, d := range c.IncompleteDays {
		w.row("Incomplete day", d/1000, d%1000)
	}
	if w.err != nil {
		return nil, w.err
	}

	for _, s := range r.Sections {
		if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}
		w = &sheetWriter{f: f, sheet: s.Name}
		for _, nt := range s.Tables {
			writeSheetTable(w, nt)
		}
		if w.err != nil {
			return nil, w.err
		}
	}

	for _, ch := range r.Charts {
		name := ChartSheet(ch.Name)
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		w = &sheetWriter{f: f, sheet: name}
		for _, p := range ch.Panels {
			writeSheetPanel(w, p)
		}
		if w.err != nil {
			return nil, w.err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the workbook to path.
func WriteXLSX(r model.Report, path string) error {
	data, err := BuildXLSX(r)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeSheetTable(w *sheetWriter, nt model.NamedTable) {
	w.row(nt.Title)
	header := make([]interface{}, 0, len(nt.Table.Keys)+len(nt.Table.Ops))
	for _, h := range nt.Table.Headers() {
		header = append(header, h)
	}
	w.row(header...)
	for _, r := range nt.Table.Rows {
		vals := make([]interface{}, 0, len(header))
		for _, k := range r.Key {
			vals = append(vals, k)
		}
		for _, op := range nt.Table.Ops {
			vals = append(vals, r.Value(op))
		}
		w.row(vals...)
	}
	w.skip()
}

// writeSheetPanel writes each series as horizontal rows: x values, then
// the mean and, for profile series, min and max.
func writeSheetPanel(w *sheetWriter, p model.Panel) {
	w.row(p.Title)
	for _, s := range p.Series {
		w.row(append([]interface{}{s.Label, p.XLabel}, ints(s.X)...)...)
		if s.HasExtrema() {
			w.row(append([]interface{}{s.Label, "Mean"}, floats(s.Y)...)...)
			w.row(append([]interface{}{s.Label, "Min"}, floats(s.Min)...)...)
			w.row(append([]interface{}{s.Label, "Max"}, floats(s.Max)...)...)
		} else {
			w.row(append([]interface{}{s.Label, "Sum"}, floats(s.Y)...)...)
		}
	}
	w.skip()
}

// sheetWriter appends rows to a sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	err   error
}

func (w *sheetWriter) row(vals ...interface{}) {
	w.next++
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &vals)
}

func (w *sheetWriter) skip() { w.next++ }

func ints(xs []int) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func floats(xs []float64) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
