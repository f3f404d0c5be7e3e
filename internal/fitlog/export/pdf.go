package export

import (
	"fmt"
	"io"

	"github.com/2beens/fitlog/internal/fitlog/reports"

	"github.com/go-pdf/fpdf"
)

// MonthlyToPDF renders the monthly report as a one-page document: title,
// two-column summary, then the "Workout Distribution" table with
// percentages.
func MonthlyToPDF(report *reports.MonthlyReport, config Config, w io.Writer) error {
	pdf := newDoc(monthlyTitle(report))

	writeSummaryTable(pdf, monthlySummary(report, config))

	if len(report.WorkoutTypeCounts) > 0 {
		writeHeading(pdf, "Workout Distribution")
		writeTableHeader(pdf, "Type", "Count", "%")

		total := distributionTotal(report.WorkoutTypeCounts)
		for _, typeCount := range report.WorkoutTypeCounts {
			writeTableRow(pdf,
				typeCount.Type.Name,
				fmt.Sprintf("%d", typeCount.Count),
				fmt.Sprintf("%d%%", reports.Percentage(typeCount.Count, total)),
			)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// YearlyToPDF renders the yearly report. The monthly breakdown comes before
// the distribution, matching the reading order of the report screen.
func YearlyToPDF(report *reports.YearlyReport, w io.Writer) error {
	pdf := newDoc(yearlyTitle(report))

	writeSummaryTable(pdf, yearlySummary(report))

	writeHeading(pdf, "Monthly Breakdown")
	writeTableHeader(pdf, "Month", "Workouts")
	for _, monthlyCount := range report.MonthlyCounts {
		writeTableRow(pdf, monthlyCount.Month.String(), fmt.Sprintf("%d", monthlyCount.Count))
	}

	if len(report.WorkoutTypeCounts) > 0 {
		writeHeading(pdf, "Workout Distribution")
		writeTableHeader(pdf, "Type", "Count")
		for _, typeCount := range report.WorkoutTypeCounts {
			writeTableRow(pdf, typeCount.Type.Name, fmt.Sprintf("%d", typeCount.Count))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

const (
	cellWidth  = 60.0
	cellHeight = 8.0
)

func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func writeHeading(pdf *fpdf.Fpdf, heading string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, heading, "", 1, "L", false, 0, "")
}

func writeSummaryTable(pdf *fpdf.Fpdf, summary []summaryRow) {
	writeTableHeader(pdf, "Metric", "Value")
	for _, summaryRow := range summary {
		writeTableRow(pdf, summaryRow.metric, fmt.Sprintf("%d", summaryRow.value))
	}
}

func writeTableHeader(pdf *fpdf.Fpdf, cells ...string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(221, 221, 221)
	for _, cell := range cells {
		pdf.CellFormat(cellWidth, cellHeight, cell, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeTableRow(pdf *fpdf.Fpdf, cells ...string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, cell := range cells {
		pdf.CellFormat(cellWidth, cellHeight, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
