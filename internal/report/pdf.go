package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
)

const (
	pageMargin = 40.0
	rowHeight  = 24.0
)

// brick red, the house color
var headerFill = [3]int{182, 67, 43}

// TrendPDF renders the date-range trend report: one page per day, each with
// an item / stock-before / stock-after table. Days render in chronological
// order. The filename is derived from the requested window, so identical
// requests produce identical files.
func TrendPDF(rowsByDay map[domain.DayKey][]domain.ItemRow, startDate, endDate string) ([]byte, string, error) {
	pdf := newDoc()

	subtitle := fmt.Sprintf("Report for the period of %s", startDate)
	if startDate != endDate {
		subtitle += fmt.Sprintf(" to %s", endDate)
	}

	days := opname.SortedDays(rowsByDay)
	if len(days) == 0 {
		pdf.AddPage()
		writeHeading(pdf, "Stock Opname Report", subtitle, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pageMargin, pdf.GetY()+20, "No data for this period.")
	}

	for _, day := range days {
		pdf.AddPage()
		writeHeading(pdf, "Stock Opname Report", subtitle, day.String())

		writeTable(pdf,
			[]string{"Item Name", "Stock Before", "Stock After"},
			[]float64{255, 130, 130},
			rowsToCells(rowsByDay[day]),
		)
	}

	filename := fmt.Sprintf("stock-opname-%s-%s.pdf",
		strings.ReplaceAll(startDate, "-", ""),
		strings.ReplaceAll(endDate, "-", ""),
	)

	return render(pdf, filename)
}

// CurrentStockPDF renders the current-stock table, urgency order preserved
// from the caller, with the freshness line under the title when known.
func CurrentStockPDF(items []domain.CurrentStockItem, latest *domain.LatestMeta) ([]byte, string, error) {
	pdf := newDoc()
	pdf.AddPage()

	subtitle := "Current stock condition"
	if latest != nil {
		subtitle = fmt.Sprintf("Terakhir diperbarui: %s", latest.Timestamp)
		if latest.Staff != "" {
			subtitle += fmt.Sprintf(" • Oleh: %s", latest.Staff)
		}
	}
	writeHeading(pdf, "Current Stock Report", subtitle, "")

	cells := make([][]string, 0, len(items))
	for _, it := range items {
		cells = append(cells, []string{
			it.Item,
			it.Condition.Label(),
			fmt.Sprintf("%g", it.CurrentQty),
			it.Unit,
			fmt.Sprintf("%g", it.MinRestock),
		})
	}

	writeTable(pdf,
		[]string{"Item", "Condition", "Current Qty", "Unit", "Minimum Restock"},
		[]float64{180, 80, 80, 70, 105},
		cells,
	)

	return render(pdf, "current-stock-report.pdf")
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	return pdf
}

func writeHeading(pdf *fpdf.Fpdf, title, subtitle, day string) {
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pageMargin, pageMargin, title)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageMargin, pageMargin+20, subtitle)

	y := pageMargin + 50
	if day != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(pageMargin, y, day)
		y += 20
	}
	pdf.SetY(y)
}

func writeTable(pdf *fpdf.Fpdf, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFillColor(245, 245, 245)
	for i, row := range rows {
		striped := i%2 == 1
		for j, cell := range row {
			pdf.CellFormat(widths[j], rowHeight, cell, "", 0, "L", striped, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

func rowsToCells(rows []domain.ItemRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.ItemName, r.Before, r.After})
	}

	return cells
}

func render(pdf *fpdf.Fpdf, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), filename, nil
}
