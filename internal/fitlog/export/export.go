package export

import (
	"errors"
	"fmt"

	"github.com/2beens/fitlog/internal/fitlog/reports"
)

// ErrNoData marks an export attempt on a report with zero workouts. The
// renderers themselves still produce a valid (all zeros) document, the
// guard lives at the request boundary.
var ErrNoData = errors.New("no workout data to export")

// Config toggles the optional summary metrics. Duration and calories are
// user-settable in the app config, off means the rows are left out of the
// rendered summary entirely.
type Config struct {
	ShowDuration bool
	ShowCalories bool
}

func monthlyTitle(report *reports.MonthlyReport) string {
	return fmt.Sprintf("%s %d - Workout Report", report.Month, report.Year)
}

func yearlyTitle(report *reports.YearlyReport) string {
	return fmt.Sprintf("%d - Yearly Workout Report", report.Year)
}

type summaryRow struct {
	metric string
	value  int
}

func monthlySummary(report *reports.MonthlyReport, config Config) []summaryRow {
	rows := []summaryRow{
		{"Total Workouts", report.TotalWorkouts},
		{"Rest Days", report.TotalRestDays},
	}
	if config.ShowDuration {
		rows = append(rows, summaryRow{"Total Duration (min)", report.TotalDuration})
	}
	if config.ShowCalories {
		rows = append(rows, summaryRow{"Total Calories", report.TotalCalories})
	}
	return rows
}

func yearlySummary(report *reports.YearlyReport) []summaryRow {
	return []summaryRow{
		{"Total Workouts", report.TotalWorkouts},
		{"Rest Days", report.TotalRestDays},
	}
}

// distributionTotal is the percentage base: the sum over the distribution
// itself, not totalWorkouts, so that orphaned entries do not skew the shares.
func distributionTotal(typeCounts []reports.TypeCount) int {
	total := 0
	for _, typeCount := range typeCounts {
		total += typeCount.Count
	}
	return total
}
