package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/entries"
	"github.com/2beens/fitlog/internal/fitlog/types"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// BuildMonthlyReport aggregates the given month's entries into a monthly
// report. The caller pre-filters entries to the month's date range; the type
// catalog maps type ids to types. Entries whose type id no longer resolves
// stay in the totals but are dropped from the distribution.
func BuildMonthlyReport(
	year int,
	month time.Month,
	monthEntries []entries.WorkoutEntry,
	typeCatalog map[int]types.WorkoutType,
) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	report := &MonthlyReport{
		Year:              year,
		Month:             month,
		TotalWorkouts:     len(monthEntries),
		WorkoutTypeCounts: typeCounts(monthEntries, typeCatalog),
		DailyCounts:       make([]DailyCount, 0),
	}

	days := make(map[int]int)
	for _, entry := range monthEntries {
		report.TotalDuration += entry.DurationMinutes
		report.TotalCalories += entry.CaloriesBurned
		days[entry.Date.Day()]++
	}

	for day, count := range days {
		report.DailyCounts = append(report.DailyCounts, DailyCount{Day: day, Count: count})
	}
	sort.Slice(report.DailyCounts, func(i, j int) bool {
		return report.DailyCounts[i].Day < report.DailyCounts[j].Day
	})

	report.TotalRestDays = DaysInMonth(year, month) - len(days)

	return report, nil
}

// BuildYearlyReport aggregates a full calendar year of entries. MonthlyCounts
// is dense: all 12 months present, zero counts included.
func BuildYearlyReport(
	year int,
	yearEntries []entries.WorkoutEntry,
	typeCatalog map[int]types.WorkoutType,
) (*YearlyReport, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}

	report := &YearlyReport{
		Year:              year,
		TotalWorkouts:     len(yearEntries),
		WorkoutTypeCounts: typeCounts(yearEntries, typeCatalog),
		MonthlyCounts:     make([]MonthlyCount, 0, 12),
	}

	months := make(map[time.Month]int)
	distinctDays := make(map[time.Time]struct{})
	for _, entry := range yearEntries {
		months[entry.Date.Month()]++
		distinctDays[entries.DayStart(entry.Date)] = struct{}{}
	}

	for month := time.January; month <= time.December; month++ {
		report.MonthlyCounts = append(report.MonthlyCounts, MonthlyCount{
			Month: month,
			Count: months[month],
		})
	}

	report.TotalRestDays = DaysInYear(year) - len(distinctDays)

	return report, nil
}

// Streak counts consecutive days with at least one entry, walking backwards
// from today. Today itself may be un-logged without breaking the streak (one
// grace day at the very start), any other gap stops the walk.
//
// The caller loads only the current month's entries, so a streak spanning a
// month boundary is undercounted. Reference behavior, kept as is.
func Streak(monthEntries []entries.WorkoutEntry, today time.Time) int {
	distinctDays := make(map[time.Time]struct{})
	for _, entry := range monthEntries {
		distinctDays[dateKey(entry.Date)] = struct{}{}
	}
	if len(distinctDays) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(distinctDays))
	for day := range distinctDays {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	streak := 0
	expected := dateKey(today)
	for _, day := range days {
		if day.Equal(expected) || day.Equal(expected.AddDate(0, 0, -1)) {
			streak++
			expected = day.AddDate(0, 0, -1)
			continue
		}
		break
	}

	return streak
}

// dateKey collapses a timestamp to its calendar date, so that entries and
// "today" compare by date even when their locations differ.
func dateKey(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MostCommonType returns the workout type with the most entries, or nil when
// there are no entries or the winning type no longer exists in the catalog.
// Ties go to the lowest type id, to keep the result deterministic.
func MostCommonType(
	allEntries []entries.WorkoutEntry,
	typeCatalog map[int]types.WorkoutType,
) *types.WorkoutType {
	counts := make(map[int]int)
	for _, entry := range allEntries {
		counts[entry.WorkoutTypeID]++
	}
	if len(counts) == 0 {
		return nil
	}

	winnerID := 0
	winnerCount := -1
	for typeID, count := range counts {
		if count > winnerCount || (count == winnerCount && typeID < winnerID) {
			winnerID = typeID
			winnerCount = count
		}
	}

	winner, ok := typeCatalog[winnerID]
	if !ok {
		return nil
	}
	return &winner
}

// typeCounts groups entries by type id, resolves the ids against the
// catalog and sorts descending by count. Orphaned ids (type deleted) are
// dropped; the first-encountered store order breaks count ties.
func typeCounts(
	groupEntries []entries.WorkoutEntry,
	typeCatalog map[int]types.WorkoutType,
) []TypeCount {
	counts := make(map[int]int)
	order := make([]int, 0)
	for _, entry := range groupEntries {
		if _, seen := counts[entry.WorkoutTypeID]; !seen {
			order = append(order, entry.WorkoutTypeID)
		}
		counts[entry.WorkoutTypeID]++
	}

	typeCounts := make([]TypeCount, 0, len(order))
	for _, typeID := range order {
		workoutType, ok := typeCatalog[typeID]
		if !ok {
			continue
		}
		typeCounts = append(typeCounts, TypeCount{
			Type:  workoutType,
			Count: counts[typeID],
		})
	}

	sort.SliceStable(typeCounts, func(i, j int) bool {
		return typeCounts[i].Count > typeCounts[j].Count
	})

	return typeCounts
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reports_test

type entriesRepo interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]entries.WorkoutEntry, error)
}

type typesRepo interface {
	ListAll(ctx context.Context) ([]types.WorkoutType, error)
}

// Analyzer loads the report window from the store and delegates to the pure
// build functions above.
type Analyzer struct {
	entriesRepo entriesRepo
	typesRepo   typesRepo
	now         func() time.Time
}

func NewAnalyzer(entriesRepo entriesRepo, typesRepo typesRepo) *Analyzer {
	return &Analyzer{
		entriesRepo: entriesRepo,
		typesRepo:   typesRepo,
		now:         time.Now,
	}
}

// SetNowFunc overrides the clock, for tests.
func (a *Analyzer) SetNowFunc(now func() time.Time) {
	a.now = now
}

func (a *Analyzer) MonthlyReport(ctx context.Context, year int, month time.Month) (_ *MonthlyReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.reports.monthly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))
	span.SetAttributes(attribute.Int("month", int(month)))

	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastDay := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.Local)

	monthEntries, err := a.entriesRepo.ListBetween(ctx, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	typeCatalog, err := a.typeCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return BuildMonthlyReport(year, month, monthEntries, typeCatalog)
}

func (a *Analyzer) YearlyReport(ctx context.Context, year int) (_ *YearlyReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.reports.yearly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))

	firstDay := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	lastDay := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	yearEntries, err := a.entriesRepo.ListBetween(ctx, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	typeCatalog, err := a.typeCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return BuildYearlyReport(year, yearEntries, typeCatalog)
}

// Overview computes the home screen values from the current month.
func (a *Analyzer) Overview(ctx context.Context) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.reports.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := a.now()
	year, month := today.Year(), today.Month()

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	lastDay := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, today.Location())

	monthEntries, err := a.entriesRepo.ListBetween(ctx, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	typeCatalog, err := a.typeCatalog(ctx)
	if err != nil {
		return nil, err
	}

	distinctDays := make(map[time.Time]struct{})
	for _, entry := range monthEntries {
		distinctDays[entries.DayStart(entry.Date)] = struct{}{}
	}

	return &Overview{
		Streak:         Streak(monthEntries, today),
		MostCommonType: MostCommonType(monthEntries, typeCatalog),
		MonthWorkouts:  len(monthEntries),
		MonthRestDays:  DaysInMonth(year, month) - len(distinctDays),
	}, nil
}

func (a *Analyzer) typeCatalog(ctx context.Context) (map[int]types.WorkoutType, error) {
	allTypes, err := a.typesRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workout types: %w", err)
	}

	catalog := make(map[int]types.WorkoutType, len(allTypes))
	for _, workoutType := range allTypes {
		catalog[workoutType.ID] = workoutType
	}
	return catalog, nil
}
