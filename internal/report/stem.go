// Package report renders an assembled meter report as PDF, Excel workbook
// or a YAML/JSON data file.
package report

import (
	"path/filepath"
	"strings"
)

// OutputStem derives the base name of generated files from an input path.
// Spaces and dots in the file stem are replaced by underscores.
func OutputStem(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer(" ", "_", ".", "_").Replace(stem)
}

// OutputPath places stem+ext in outDir, or next to the input when outDir
// is empty.
func OutputPath(input, outDir, ext string) string {
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, OutputStem(input)+ext)
}
