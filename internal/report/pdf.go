package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/theirongolddev/meterstat/internal/model"
)

const (
	pdfFont     = "Arial"
	pdfMargin   = 15.0
	rowHeight   = 6.0
	keyColWidth = 25.0
	valColWidth = 30.0
)

// seriesColors cycles across years in every chart panel.
var seriesColors = [][3]int{
	{31, 119, 180},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
	{140, 86, 75},
}

// BuildPDF renders the narrative, the section tables and both chart
// bundles into a PDF document.
func BuildPDF(r model.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, "Energy analysis")
	pdf.Ln(12)
	if r.Source != "" {
		pdf.SetFont(pdfFont, "", 9)
		pdf.Cell(0, 5, tr(fmt.Sprintf("Source: %s (%s)", r.Source, r.Kind)))
		pdf.Ln(8)
	}

	pdf.SetFont(pdfFont, "", 10)
	for _, line := range strings.Split(r.Summary, "\n") {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
		pdf.Ln(2)
	}

	for _, s := range r.Sections {
		pdf.Ln(4)
		pdf.SetFont(pdfFont, "B", 14)
		pdf.Cell(0, 8, tr(s.Name))
		pdf.Ln(10)
		for _, nt := range s.Tables {
			writeTable(pdf, tr, nt)
		}
	}

	for _, c := range r.Charts {
		writeChart(pdf, tr, c)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the report to path.
func WritePDF(r model.Report, path string) error {
	data, err := BuildPDF(r)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, nt model.NamedTable) {
	pdf.SetFont(pdfFont, "B", 11)
	pdf.Cell(0, 7, tr(nt.Title))
	pdf.Ln(8)

	if nt.Table.Len() == 0 {
		pdf.SetFont(pdfFont, "I", 9)
		pdf.Cell(0, 5, "No data")
		pdf.Ln(7)
		return
	}

	pdf.SetFont(pdfFont, "B", 10)
	for _, k := range nt.Table.Keys {
		pdf.CellFormat(keyColWidth, rowHeight, k.String(), "1", 0, "C", false, 0, "")
	}
	for _, op := range nt.Table.Ops {
		pdf.CellFormat(valColWidth, rowHeight, op.String(), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	for _, row := range nt.Table.Rows {
		for _, k := range row.Key {
			pdf.CellFormat(keyColWidth, rowHeight, strconv.Itoa(k), "1", 0, "C", false, 0, "")
		}
		for _, op := range nt.Table.Ops {
			pdf.CellFormat(valColWidth, rowHeight, fmt.Sprintf("%.1f", row.Value(op)), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// plotArea is a panel rectangle in page coordinates.
type plotArea struct {
	x, y, w, h float64
}

func writeChart(pdf *gofpdf.Fpdf, tr func(string) string, c model.Chart) {
	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 14)
	pdf.Cell(0, 8, tr("Energy use: "+c.Name))
	pdf.Ln(10)

	cols := 1
	if len(c.Panels) > 4 {
		cols = 2
	}
	rows := (len(c.Panels) + cols - 1) / cols
	if rows == 0 {
		return
	}

	pageW, pageH := pdf.GetPageSize()
	top := pdf.GetY()
	cellW := (pageW - 2*pdfMargin) / float64(cols)
	cellH := (pageH - pdfMargin - top) / float64(rows)

	// Panels are laid out by hand; page breaks would split them.
	pdf.SetAutoPageBreak(false, 0)
	for i, p := range c.Panels {
		col, row := i%cols, i/cols
		area := plotArea{
			x: pdfMargin + float64(col)*cellW + 10,
			y: top + float64(row)*cellH + 6,
			w: cellW - 14,
			h: cellH - 12,
		}
		drawPanel(pdf, tr, p, area)
	}
	pdf.SetAutoPageBreak(true, pdfMargin)
}

func drawPanel(pdf *gofpdf.Fpdf, tr func(string) string, p model.Panel, a plotArea) {
	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(a.x, a.y-1.5, tr(p.Title))

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.Rect(a.x, a.y, a.w, a.h, "D")

	if len(p.Series) == 0 {
		pdf.SetFont(pdfFont, "I", 7)
		pdf.Text(a.x+2, a.y+a.h/2, "No data")
		return
	}

	xMin, xMax, yMax := panelBounds(p)
	sx := func(x int) float64 {
		return a.x + (float64(x)-xMin)/(xMax-xMin)*a.w
	}
	sy := func(y float64) float64 {
		return a.y + a.h - y/yMax*a.h
	}

	pdf.SetFont(pdfFont, "", 6)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(a.x-8, a.y+2, fmt.Sprintf("%.1f", yMax))
	pdf.Text(a.x-4, a.y+a.h, "0")
	pdf.Text(a.x, a.y+a.h+3, strconv.Itoa(int(xMin)))
	pdf.Text(a.x+a.w-4, a.y+a.h+3, strconv.Itoa(int(xMax)))
	pdf.Text(a.x+a.w/2-5, a.y+a.h+3, tr(p.XLabel))

	pdf.SetLineWidth(0.3)
	for i, s := range p.Series {
		rgb := seriesColors[i%len(seriesColors)]
		pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])

		for j := range s.X {
			px, py := sx(s.X[j]), sy(s.Y[j])
			if j > 0 {
				pdf.Line(sx(s.X[j-1]), sy(s.Y[j-1]), px, py)
			}
			pdf.Circle(px, py, 0.5, "F")
		}
		if s.HasExtrema() {
			for j := range s.X {
				px := sx(s.X[j])
				lo, hi := sy(s.Min[j]), sy(s.Max[j])
				pdf.Line(px, lo, px, hi)
				pdf.Line(px-0.8, lo, px+0.8, lo)
				pdf.Line(px-0.8, hi, px+0.8, hi)
			}
		}
	}

	drawLegend(pdf, p.Series, a)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
}

// drawLegend lists the series in the top right corner, newest year first.
func drawLegend(pdf *gofpdf.Fpdf, series []model.Series, a plotArea) {
	pdf.SetFont(pdfFont, "", 6)
	y := a.y + 3
	for _, i := range LegendOrder(len(series)) {
		rgb := seriesColors[i%len(seriesColors)]
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(a.x+a.w-14, y-1.6, 2, 2, "F")
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(a.x+a.w-11, y, series[i].Label)
		y += 3
	}
}

// LegendOrder returns series indexes in legend order: reverse of the
// ascending-year series order.
func LegendOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

// panelBounds returns the x range and the y maximum of a panel, counting
// error bar extents. The y axis always starts at zero.
func panelBounds(p model.Panel) (xMin, xMax, yMax float64) {
	xMin, xMax = math.Inf(1), math.Inf(-1)
	for _, s := range p.Series {
		for j, x := range s.X {
			xMin = math.Min(xMin, float64(x))
			xMax = math.Max(xMax, float64(x))
			yMax = math.Max(yMax, s.Y[j])
			if s.HasExtrema() {
				yMax = math.Max(yMax, s.Max[j])
			}
		}
	}
	if xMax <= xMin {
		xMin, xMax = xMin-1, xMax+1
	}
	if yMax <= 0 {
		yMax = 1
	}
	return xMin, xMax, yMax * 1.05
}
