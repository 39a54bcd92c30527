package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/meterstat/internal/config"
	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/source"
)

// progressEvery is how many rows are normalized between progress callbacks.
const progressEvery = 2000

// LoadOptions controls how an export is interpreted. Zero values fall back
// to the default column markers and calorific factor.
type LoadOptions struct {
	Markers         config.ColumnMarkers
	CalorificFactor float64
}

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Path      string
	Columns   source.Columns
	Kind      model.SourceKind
	Readings  []model.Reading
	TotalRows int
}

// ProgressFunc is called during loading to report progress.
// current is the number of rows normalized so far, total is the row count.
type ProgressFunc func(current, total int)

// Load reads an export file and normalizes every row into a reading.
// Any malformed row aborts the load.
func Load(path string, opts LoadOptions, progressFn ProgressFunc) (*LoadResult, error) {
	sheet, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := LoadSheet(sheet, opts, progressFn)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	result.Path = path
	return result, nil
}

// LoadSheet validates the header of an already read sheet and normalizes
// its rows. Each timestamp is parsed exactly once.
func LoadSheet(sheet source.Sheet, opts LoadOptions, progressFn ProgressFunc) (*LoadResult, error) {
	opts = opts.withDefaults()

	cols, err := source.DetectColumns(sheet.Header, opts.Markers)
	if err != nil {
		return nil, err
	}
	kind := config.KindForColumn(cols.ConsumptionName, opts.Markers.ElectricUnit)
	logrus.WithFields(logrus.Fields{
		"column": cols.ConsumptionName,
		"kind":   kind,
		"rows":   len(sheet.Rows),
	}).Debug("detected consumption column")

	raw, err := source.ExtractRecords(sheet, cols)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		Columns:   cols,
		Kind:      kind,
		Readings:  make([]model.Reading, 0, len(raw)),
		TotalRows: len(raw),
	}
	for i, rec := range raw {
		r, err := source.Normalize(rec, kind, opts.CalorificFactor)
		if err != nil {
			return nil, err
		}
		result.Readings = append(result.Readings, r)

		n := i + 1
		if progressFn != nil && (n%progressEvery == 0 || n == len(raw)) {
			progressFn(n, len(raw))
		}
	}
	return result, nil
}

func (o LoadOptions) withDefaults() LoadOptions {
	def := config.DefaultMarkers()
	if o.Markers.Start == "" {
		o.Markers.Start = def.Start
	}
	if o.Markers.End == "" {
		o.Markers.End = def.End
	}
	if o.Markers.Consumption == "" {
		o.Markers.Consumption = def.Consumption
	}
	if o.Markers.ElectricUnit == "" {
		o.Markers.ElectricUnit = def.ElectricUnit
	}
	if o.CalorificFactor <= 0 {
		o.CalorificFactor = config.DefaultCalorificFactor
	}
	return o
}
