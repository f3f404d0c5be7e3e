package entries

import "time"

// WorkoutEntry is a single logged workout occurrence on a calendar date.
// Date is the local midnight of that day; duration and calories are optional
// and stored as 0 when absent.
type WorkoutEntry struct {
	ID              int       `json:"id"`
	Date            time.Time `json:"date"`
	WorkoutTypeID   int       `json:"workoutTypeId"`
	Note            string    `json:"note,omitempty"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	CaloriesBurned  int       `json:"caloriesBurned,omitempty"`
}

// DayStart normalizes a timestamp to local midnight of its calendar day,
// the canonical representation of an entry date.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TypeCount is the per-type entry count returned by grouped range queries.
type TypeCount struct {
	WorkoutTypeID int `json:"workoutTypeId"`
	Count         int `json:"count"`
}

// DailyCount is the per-day entry count returned by grouped range queries.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}
