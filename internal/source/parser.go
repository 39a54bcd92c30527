// Package source reads smart-meter exports and normalizes their interval rows.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/meterstat/internal/model"
)

const utf8BOM = "\ufeff"

// ReadFile loads the first sheet of a CSV or Excel export.
func ReadFile(path string) (Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path) //nolint:gosec // path chosen by the user
		if err != nil {
			return Sheet{}, err
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return Sheet{}, fmt.Errorf("%w %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads a comma separated export. The first record is the header.
func ReadCSV(r io.Reader) (Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Sheet{}, ErrEmptyInput
		}
		return Sheet{}, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	// encoding/csv drops empty lines itself, so positions come from the reader.
	headerLine, _ := reader.FieldPos(0)

	sheet := Sheet{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("reading csv: %w", err)
		}
		if blankRow(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		sheet.Rows = append(sheet.Rows, record)
		sheet.Lines = append(sheet.Lines, line-headerLine)
	}
	return sheet, nil
}

func readXLSX(path string) (Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Sheet{}, ErrEmptyInput
	}

	sheet := Sheet{Header: rows[0]}
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
		sheet.Lines = append(sheet.Lines, i+1)
	}
	return sheet, nil
}

// ExtractRecords pulls the start, end and consumption cells out of every
// data row. A consumption cell that is not a number is an input error.
// Rows are numbered from sheet.Lines when present.
func ExtractRecords(sheet Sheet, cols Columns) ([]model.RawRecord, error) {
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptyInput
	}
	numbered := len(sheet.Lines) == len(sheet.Rows)

	records := make([]model.RawRecord, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		rowNum := i + 1
		if numbered {
			rowNum = sheet.Lines[i]
		}
		cell := strings.TrimSpace(cellAt(row, cols.Consumption))
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, &RowError{Row: rowNum, Err: fmt.Errorf("consumption value %q is not a number", cell)}
		}
		records = append(records, model.RawRecord{
			Row:            rowNum,
			StartTimestamp: cellAt(row, cols.Start),
			EndTimestamp:   cellAt(row, cols.End),
			RawValue:       value,
		})
	}
	return records, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
