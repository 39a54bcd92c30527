package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
)

// sampleReport assembles two years of hourly data with one gap day.
func sampleReport(t *testing.T) model.Report {
	t.Helper()
	var readings []model.Reading
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 2*365*24; h++ {
		if h/24 == 40 && h%24 >= 12 {
			continue
		}
		s := start.Add(time.Duration(h) * time.Hour)
		readings = append(readings, model.NewReading(model.Electric, 0.5, s, s.Add(time.Hour)))
	}
	res := &pipeline.LoadResult{Path: "/data/my export.v2.csv", Kind: model.Electric, Readings: readings}
	return pipeline.BuildReport(res, false)
}

func TestOutputStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/data/consumption.csv", "consumption"},
		{"/data/my export.v2.csv", "my_export_v2"},
		{"C 1.2 gas.xlsx", "C_1_2_gas"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputStem(tt.in), tt.in)
	}
	assert.Equal(t, filepath.Join("/data", "my_export_v2.pdf"), OutputPath("/data/my export.v2.csv", "", ".pdf"))
	assert.Equal(t, filepath.Join("/out", "consumption.xlsx"), OutputPath("/data/consumption.csv", "/out", ".xlsx"))
}

func TestLegendOrder(t *testing.T) {
	assert.Equal(t, []int{2, 1, 0}, LegendOrder(3))
	assert.Empty(t, LegendOrder(0))
}

func TestPanelBounds(t *testing.T) {
	p := model.Panel{Series: []model.Series{
		{X: []int{0, 23}, Y: []float64{1, 2}, Min: []float64{0.5, 1}, Max: []float64{3, 4}},
	}}
	xMin, xMax, yMax := panelBounds(p)
	assert.Equal(t, 0.0, xMin)
	assert.Equal(t, 23.0, xMax)
	assert.InDelta(t, 4.2, yMax, 1e-9)

	xMin, xMax, _ = panelBounds(model.Panel{Series: []model.Series{{X: []int{5}, Y: []float64{1}}}})
	assert.Less(t, xMin, xMax)
}

func TestBuildPDF(t *testing.T) {
	data, err := BuildPDF(sampleReport(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is not a PDF")

	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	require.NoError(t, WritePDF(sampleReport(t), path))
	assert.FileExists(t, path)
}

func TestBuildPDF_EmptyReport(t *testing.T) {
	_, err := BuildPDF(pipeline.Assemble(nil, nil, model.Completeness{}))
	require.NoError(t, err)
}

func TestBuildXLSX(t *testing.T) {
	r := sampleReport(t)
	data, err := BuildXLSX(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "All data", "Winter", "Summer", "Chart All", "Chart Months"}, f.GetSheetList())

	title, err := f.GetCellValue("All data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Yearly Use", title)
	header, err := f.GetCellValue("All data", "A2")
	require.NoError(t, err)
	assert.Equal(t, "year", header)
	year, err := f.GetCellValue("All data", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2023", year)

	panel, err := f.GetCellValue("Chart All", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Daily use", panel)

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		if len(row) >= 2 && row[0] == "Missing days" {
			found = true
			assert.Equal(t, "1", row[1])
		}
	}
	assert.True(t, found, "summary sheet lists missing days")
}

func TestEncode(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r, FormatYAML))
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "electric", doc["kind"])
	assert.Contains(t, buf.String(), "keys: [year]")

	buf.Reset()
	require.NoError(t, Encode(&buf, r, FormatJSON))
	var back model.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r.Completeness, back.Completeness)
	assert.Len(t, back.Sections, 3)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, ".json", FormatJSON.Ext())
	_, err = ParseFormat("csv")
	assert.Error(t, err)
}
