package source

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/meterstat/internal/config"
)

// DetectColumns locates the start, end and consumption columns in a header row.
//
// Start and end headers must equal their markers once surrounding whitespace
// is removed (exports write " Start" and " End"). The consumption column is
// the single header containing the consumption marker; zero or several
// matches are both errors.
func DetectColumns(header []string, m config.ColumnMarkers) (Columns, error) {
	cols := Columns{Start: -1, End: -1, Consumption: -1}
	var candidates []string

	for i, raw := range header {
		name := strings.TrimSpace(raw)
		switch {
		case name == m.Start:
			cols.Start = i
		case name == m.End:
			cols.End = i
		}
		if strings.Contains(name, m.Consumption) {
			candidates = append(candidates, name)
			cols.Consumption = i
			cols.ConsumptionName = name
		}
	}

	switch len(candidates) {
	case 0:
		return cols, fmt.Errorf("%w %q: wrong file type, or wrong file type options", ErrMissingConsumptionColumn, m.Consumption)
	case 1:
	default:
		return cols, fmt.Errorf("%w %q: %s", ErrAmbiguousConsumption, m.Consumption, strings.Join(candidates, ", "))
	}
	if cols.Start < 0 {
		return cols, fmt.Errorf("%w %q: wrong file type, or wrong file type options", ErrMissingStartColumn, m.Start)
	}
	if cols.End < 0 {
		return cols, fmt.Errorf("%w %q: wrong file type, or wrong file type options", ErrMissingEndColumn, m.End)
	}
	return cols, nil
}
