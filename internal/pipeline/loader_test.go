package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/source"
)

func writeCSV(t testing.TB, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

func halfHour(n int) time.Duration {
	return time.Duration(n) * 30 * time.Minute
}

// exportRows renders n consecutive half-hour rows of an electric export,
// header first.
func exportRows(n int) [][]string {
	rows := [][]string{{"Consumption (kWh)", " Estimated Cost Inc. Tax (p)", " Start", " End"}}
	start := day(2023, 1, 1)
	for i := 0; i < n; i++ {
		s := start.Add(halfHour(i))
		rows = append(rows, []string{"0.1", "2.8", " " + s.Format(source.TimeLayout), " " + s.Add(halfHour(1)).Format(source.TimeLayout)})
	}
	return rows
}

func TestLoad_Electric(t *testing.T) {
	path := writeCSV(t, "consumption.csv", []string{
		"Consumption (kWh), Start, End",
		"0.25, 2023-01-15T00:00:00+0000, 2023-01-15T00:30:00+0000",
		"0.5, 2023-01-15T00:30:00+0000, 2023-01-15T01:00:00+0000",
	})

	var calls [][2]int
	res, err := Load(path, LoadOptions{}, func(cur, total int) {
		calls = append(calls, [2]int{cur, total})
	})
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, model.Electric, res.Kind)
	assert.Equal(t, 2, res.TotalRows)
	require.Len(t, res.Readings, 2)
	assert.InDelta(t, 0.5, res.Readings[1].EnergyUse, 1e-12)
	assert.Equal(t, 30, res.Readings[1].DurationMinutes)
	assert.Equal(t, [][2]int{{2, 2}}, calls)
}

func TestLoad_GasConverted(t *testing.T) {
	path := writeCSV(t, "gas.csv", []string{
		"Consumption (m³), Start, End",
		"10, 2023-01-15T00:00:00+0000, 2023-01-15T00:30:00+0000",
	})

	res, err := Load(path, LoadOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.Gas, res.Kind)
	assert.InDelta(t, 113.627, res.Readings[0].EnergyUse, 1e-3)

	res, err = Load(path, LoadOptions{CalorificFactor: 2}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 20, res.Readings[0].EnergyUse, 1e-12)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"missing end", []string{"Consumption (kWh), Start, Finish", "1, 2023-01-15T00:00:00+0000, 2023-01-15T00:30:00+0000"}, source.ErrMissingEndColumn},
		{"no data rows", []string{"Consumption (kWh), Start, End"}, source.ErrEmptyInput},
		{"negative duration", []string{"Consumption (kWh), Start, End", "1, 2023-01-15T01:00:00+0000, 2023-01-15T00:30:00+0000"}, source.ErrNegativeDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCSV(t, "bad.csv", tt.lines), LoadOptions{}, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "err = %v, want %v", err, tt.want)
		})
	}
}

func TestLoad_BadTimestampNamesRow(t *testing.T) {
	path := writeCSV(t, "bad.csv", []string{
		"Consumption (kWh), Start, End",
		"1, 2023-01-15T00:00:00+0000, 2023-01-15T00:30:00+0000",
		"1, 15/01/2023 00:30, 2023-01-15T01:00:00+0000",
	})
	_, err := Load(path, LoadOptions{}, nil)
	var pe *source.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, "start", pe.Column)
}

func TestLoadSheet_ProgressEveryN(t *testing.T) {
	n := progressEvery*2 + 5
	rows := exportRows(n)
	sheet := source.Sheet{Header: rows[0], Rows: rows[1:]}

	var got []int
	res, err := LoadSheet(sheet, LoadOptions{}, func(cur, _ int) { got = append(got, cur) })
	require.NoError(t, err)
	assert.Len(t, res.Readings, n)
	assert.Equal(t, []int{progressEvery, progressEvery * 2, n}, got)
	assert.Equal(t, n, res.TotalRows)
	assert.Equal(t, n/48, Audit(res.Readings, false).TotalDays-1, "last partial day is incomplete")
}
