package reports

import (
	"time"

	"github.com/2beens/fitlog/internal/fitlog/types"
)

// TypeCount is one slice of the per-type workout distribution within a
// report window.
type TypeCount struct {
	Type  types.WorkoutType `json:"type"`
	Count int               `json:"count"`
}

// DailyCount holds the entry count for one day of the month; days without
// entries are absent (sparse), consumers must treat missing days as 0.
type DailyCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// MonthlyCount holds the entry count for one month of the year; unlike
// DailyCount the yearly report always carries all 12 months, zeros included.
type MonthlyCount struct {
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// MonthlyReport is the derived monthly aggregate, never persisted.
// TotalRestDays is the calendar complement: days of the month with zero
// logged entries of any kind, regardless of rest-day typed entries.
type MonthlyReport struct {
	Year              int          `json:"year"`
	Month             time.Month   `json:"month"`
	TotalWorkouts     int          `json:"totalWorkouts"`
	TotalRestDays     int          `json:"totalRestDays"`
	TotalDuration     int          `json:"totalDuration"`
	TotalCalories     int          `json:"totalCalories"`
	WorkoutTypeCounts []TypeCount  `json:"workoutTypeCounts"`
	DailyCounts       []DailyCount `json:"dailyCounts"`
}

// YearlyReport is the derived yearly aggregate, never persisted.
type YearlyReport struct {
	Year              int            `json:"year"`
	TotalWorkouts     int            `json:"totalWorkouts"`
	TotalRestDays     int            `json:"totalRestDays"`
	MonthlyCounts     []MonthlyCount `json:"monthlyCounts"`
	WorkoutTypeCounts []TypeCount    `json:"workoutTypeCounts"`
}

// Overview backs the home screen: streak and favorite type over the current
// month, plus the month totals.
type Overview struct {
	Streak         int                `json:"streak"`
	MostCommonType *types.WorkoutType `json:"mostCommonType,omitempty"`
	MonthWorkouts  int                `json:"monthWorkouts"`
	MonthRestDays  int                `json:"monthRestDays"`
}

// Percentage computes count/total*100 truncated to an integer. Truncation
// (floor, not round) is part of the report contract: {1, 2} of 3 displays as
// 33% and 66%.
func Percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return count * 100 / total
}

func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func DaysInYear(year int) int {
	if DaysInMonth(year, time.February) == 29 {
		return 366
	}
	return 365
}
