package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/meterstat/internal/model"
	"github.com/theirongolddev/meterstat/internal/pipeline"
)

func testReport() model.Report {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	var readings []model.Reading
	for h := 0; h < 24*3; h++ {
		from := start.Add(time.Duration(h) * time.Hour)
		readings = append(readings, model.NewReading(model.Electric, 0.5, from, from.Add(time.Hour)))
	}
	return pipeline.BuildReport(&pipeline.LoadResult{Path: "x.csv", Kind: model.Electric, Readings: readings}, false)
}

func TestFindSection(t *testing.T) {
	r := testReport()

	s, err := findSection(r, "winter")
	require.NoError(t, err)
	assert.Equal(t, "Winter", s.Name)

	_, err = findSection(r, "spring")
	assert.ErrorContains(t, err, "All data, Winter, Summer")
}

func TestSectionTotal(t *testing.T) {
	r := testReport()
	winter, err := findSection(r, "Winter")
	require.NoError(t, err)
	summer, err := findSection(r, "Summer")
	require.NoError(t, err)

	assert.Equal(t, "36.0", sectionTotal(winter, 2023))
	assert.Equal(t, "-", sectionTotal(summer, 2023))
	assert.Equal(t, "-", sectionTotal(winter, 1999))
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"summary", "daily", "hourly", "report", "export", "tui", "config", "setup"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}
