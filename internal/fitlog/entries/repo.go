package entries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/notify"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEntryNotFound = errors.New("workout entry not found")

type Repo struct {
	db       *pgxpool.Pool
	notifier *notify.Notifier
}

func NewRepo(db *pgxpool.Pool, notifier *notify.Notifier) *Repo {
	return &Repo{
		db:       db,
		notifier: notifier,
	}
}

func (r *Repo) Add(ctx context.Context, entry WorkoutEntry) (_ *WorkoutEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if entry.WorkoutTypeID == 0 {
		return nil, errors.New("workout type id empty")
	}
	if entry.DurationMinutes < 0 || entry.CaloriesBurned < 0 {
		return nil, errors.New("duration and calories must be non-negative")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_entry
				(entry_date, workout_type_id, note, duration_minutes, calories_burned)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		DayStart(entry.Date), entry.WorkoutTypeID, entry.Note, entry.DurationMinutes, entry.CaloriesBurned,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", id))

	entry.ID = id
	entry.Date = DayStart(entry.Date)
	r.notifier.Publish(notify.ChangeEntries)
	return &entry, nil
}

func (r *Repo) Update(ctx context.Context, entry *WorkoutEntry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", entry.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_entry
			SET entry_date = $1, workout_type_id = $2, note = $3, duration_minutes = $4, calories_burned = $5
			WHERE id = $6;`,
		DayStart(entry.Date), entry.WorkoutTypeID, entry.Note, entry.DurationMinutes, entry.CaloriesBurned, entry.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	r.notifier.Publish(notify.ChangeEntries)
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_entry WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	r.notifier.Publish(notify.ChangeEntries)
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *WorkoutEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, entry_date, workout_type_id, note, duration_minutes, calories_burned
			FROM workout_entry
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workoutEntries, err := rows2entries(rows)
	if err != nil {
		return nil, err
	}

	if len(workoutEntries) != 1 {
		return nil, ErrEntryNotFound
	}

	return &workoutEntries[0], nil
}

// ListBetween returns all entries with dates in [from, to] inclusive,
// ordered by date ascending (the stable store order the aggregation and the
// exporters rely on).
func (r *Repo) ListBetween(ctx context.Context, from, to time.Time) (_ []WorkoutEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.listbetween")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from.String()))
	span.SetAttributes(attribute.String("to", to.String()))

	if to.Before(from) {
		return nil, errors.New("end date before start date")
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, entry_date, workout_type_id, note, duration_minutes, calories_burned
			FROM workout_entry
			WHERE entry_date >= $1 AND entry_date <= $2
			ORDER BY entry_date, id;`,
		DayStart(from), DayStart(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workoutEntries, err := rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return workoutEntries, nil
}

// ListAll returns every stored entry, used by the backup codec.
func (r *Repo) ListAll(ctx context.Context) (_ []WorkoutEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, entry_date, workout_type_id, note, duration_minutes, calories_burned
			FROM workout_entry
			ORDER BY entry_date, id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workoutEntries, err := rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return workoutEntries, nil
}

// TypeCountsBetween groups entries in [from, to] by workout type, counts
// descending; ties keep the store order.
func (r *Repo) TypeCountsBetween(ctx context.Context, from, to time.Time) (_ []TypeCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.typecountsbetween")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT workout_type_id, COUNT(*)
			FROM workout_entry
			WHERE entry_date >= $1 AND entry_date <= $2
			GROUP BY workout_type_id
			ORDER BY COUNT(*) DESC, workout_type_id;`,
		DayStart(from), DayStart(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	counts := make([]TypeCount, 0)
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.WorkoutTypeID, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, nil
}

// DailyCountsBetween groups entries in [from, to] by calendar day; days with
// zero entries are absent (sparse).
func (r *Repo) DailyCountsBetween(ctx context.Context, from, to time.Time) (_ []DailyCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.dailycountsbetween")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT entry_date, COUNT(*)
			FROM workout_entry
			WHERE entry_date >= $1 AND entry_date <= $2
			GROUP BY entry_date
			ORDER BY entry_date;`,
		DayStart(from), DayStart(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	counts := make([]DailyCount, 0)
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, nil
}

// CountOnDate tells how many entries already exist on a calendar day, used
// for the save-time conflict nudge. The store itself permits multiple
// entries per day.
func (r *Repo) CountOnDate(ctx context.Context, date time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.entries.countondate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_entry WHERE entry_date = $1;`,
		DayStart(date),
	).Scan(&count); err != nil {
		return -1, fmt.Errorf("count entries on date: %w", err)
	}
	return count, nil
}

func rows2entries(rows pgx.Rows) ([]WorkoutEntry, error) {
	var workoutEntries []WorkoutEntry
	for rows.Next() {
		var id int
		var entryDate time.Time
		var workoutTypeID int
		var note string
		var durationMinutes int
		var caloriesBurned int
		if err := rows.Scan(&id, &entryDate, &workoutTypeID, &note, &durationMinutes, &caloriesBurned); err != nil {
			return nil, err
		}

		workoutEntries = append(workoutEntries, WorkoutEntry{
			ID:              id,
			Date:            entryDate,
			WorkoutTypeID:   workoutTypeID,
			Note:            note,
			DurationMinutes: durationMinutes,
			CaloriesBurned:  caloriesBurned,
		})
	}

	if workoutEntries == nil {
		workoutEntries = make([]WorkoutEntry, 0)
	}

	return workoutEntries, nil
}
