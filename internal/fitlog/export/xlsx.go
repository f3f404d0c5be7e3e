package export

import (
	"fmt"
	"io"

	"github.com/2beens/fitlog/internal/fitlog/reports"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// MonthlyToXLSX renders the monthly report as a single-sheet spreadsheet:
// title, summary, type distribution with percentages, then one row per
// logged day. The sink gets the document in one Write pass.
func MonthlyToXLSX(report *reports.MonthlyReport, config Config, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	row := 1
	if err := setRow(f, row, monthlyTitle(report)); err != nil {
		return err
	}
	row += 2

	if row, err = writeSummary(f, row, headerStyle, monthlySummary(report, config)); err != nil {
		return err
	}

	if len(report.WorkoutTypeCounts) > 0 {
		row++
		if err := setRowStyled(f, row, headerStyle, "Workout Type", "Count", "Percentage"); err != nil {
			return err
		}
		row++

		total := distributionTotal(report.WorkoutTypeCounts)
		for _, typeCount := range report.WorkoutTypeCounts {
			percentage := fmt.Sprintf("%d%%", reports.Percentage(typeCount.Count, total))
			if err := setRow(f, row, typeCount.Type.Name, typeCount.Count, percentage); err != nil {
				return err
			}
			row++
		}
	}

	if len(report.DailyCounts) > 0 {
		row++
		if err := setRowStyled(f, row, headerStyle, "Day", "Workouts"); err != nil {
			return err
		}
		row++

		for _, dailyCount := range report.DailyCounts {
			if err := setRow(f, row, fmt.Sprintf("Day %d", dailyCount.Day), dailyCount.Count); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// YearlyToXLSX renders the yearly report: title, summary, type distribution
// without percentages, then all 12 months.
func YearlyToXLSX(report *reports.YearlyReport, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	row := 1
	if err := setRow(f, row, yearlyTitle(report)); err != nil {
		return err
	}
	row += 2

	if row, err = writeSummary(f, row, headerStyle, yearlySummary(report)); err != nil {
		return err
	}

	if len(report.WorkoutTypeCounts) > 0 {
		row++
		if err := setRowStyled(f, row, headerStyle, "Workout Type", "Count"); err != nil {
			return err
		}
		row++

		for _, typeCount := range report.WorkoutTypeCounts {
			if err := setRow(f, row, typeCount.Type.Name, typeCount.Count); err != nil {
				return err
			}
			row++
		}
	}

	row++
	if err := setRowStyled(f, row, headerStyle, "Month", "Workouts"); err != nil {
		return err
	}
	row++
	for _, monthlyCount := range report.MonthlyCounts {
		if err := setRow(f, row, monthlyCount.Month.String(), monthlyCount.Count); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"DDDDDD"},
			Pattern: 1,
		},
	})
}

func writeSummary(f *excelize.File, row, headerStyle int, summary []summaryRow) (int, error) {
	if err := setRowStyled(f, row, headerStyle, "Metric", "Value"); err != nil {
		return 0, err
	}
	row++

	for _, summaryRow := range summary {
		if err := setRow(f, row, summaryRow.metric, summaryRow.value); err != nil {
			return 0, err
		}
		row++
	}
	return row, nil
}

func setRow(f *excelize.File, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d cell name: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

func setRowStyled(f *excelize.File, row, style int, values ...any) error {
	if err := setRow(f, row, values...); err != nil {
		return err
	}

	firstCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d cell name: %w", row, err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return fmt.Errorf("row %d cell name: %w", row, err)
	}
	if err := f.SetCellStyle(sheetName, firstCell, lastCell, style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}
