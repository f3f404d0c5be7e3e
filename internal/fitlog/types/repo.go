package types

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

var ErrTypeNotFound = errors.New("workout type not found")

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

func (r *Repo) Add(ctx context.Context, workoutType WorkoutType) (_ *WorkoutType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workoutType.Name == "" {
		return nil, errors.New("workout type name empty")
	}
	if workoutType.CreatedAt.IsZero() {
		workoutType.CreatedAt = time.Now()
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_type
				(name, color, icon, is_default, is_rest_day, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		workoutType.Name, workoutType.Color.String(), workoutType.Icon.String(),
		workoutType.IsDefault, workoutType.IsRestDay, workoutType.CreatedAt,
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

	span.SetAttributes(attribute.Int("type.id", id))

	workoutType.ID = id
	r.notifier.Publish(notify.ChangeTypes)
	return &workoutType, nil
}

func (r *Repo) Update(ctx context.Context, workoutType *WorkoutType) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workoutType.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_type SET name = $1, color = $2, icon = $3, is_rest_day = $4 WHERE id = $5;`,
		workoutType.Name, workoutType.Color.String(), workoutType.Icon.String(),
		workoutType.IsRestDay, workoutType.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTypeNotFound
	}

	r.notifier.Publish(notify.ChangeTypes)
	return nil
}

// Delete removes the workout type; entries referencing it go away via
// ON DELETE CASCADE on the workout_entry foreign key.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_type WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTypeNotFound
	}

	r.notifier.Publish(notify.ChangeTypes)
	// cascaded entry deletes change the entry set too
	r.notifier.Publish(notify.ChangeEntries)
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *WorkoutType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, color, icon, is_default, is_rest_day, created_at
			FROM workout_type
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

	workoutTypes, err := rows2types(rows)
	if err != nil {
		return nil, err
	}

	if len(workoutTypes) != 1 {
		return nil, ErrTypeNotFound
	}

	return &workoutTypes[0], nil
}

func (r *Repo) ListAll(ctx context.Context) (_ []WorkoutType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, color, icon, is_default, is_rest_day, created_at
			FROM workout_type
			ORDER BY id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workoutTypes, err := rows2types(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2types: %w", err)
	}
	return workoutTypes, nil
}

// SeedDefaults inserts the default type catalog if the table is still empty.
func (r *Repo) SeedDefaults(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.types.seeddefaults")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_type;`).Scan(&count); err != nil {
		return fmt.Errorf("count workout types: %w", err)
	}
	if count > 0 {
		span.SetAttributes(attribute.Bool("seeded", false))
		return nil
	}

	for _, workoutType := range DefaultTypes() {
		if _, err := r.Add(ctx, workoutType); err != nil {
			return fmt.Errorf("seed type %q: %w", workoutType.Name, err)
		}
	}

	span.SetAttributes(attribute.Bool("seeded", true))
	return nil
}

func rows2types(rows pgx.Rows) ([]WorkoutType, error) {
	var workoutTypes []WorkoutType
	for rows.Next() {
		var id int
		var name string
		var color string
		var icon string
		var isDefault bool
		var isRestDay bool
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &color, &icon, &isDefault, &isRestDay, &createdAt); err != nil {
			return nil, err
		}

		workoutTypes = append(workoutTypes, WorkoutType{
			ID:        id,
			Name:      name,
			Color:     ParseColor(color),
			Icon:      ParseIcon(icon),
			IsDefault: isDefault,
			IsRestDay: isRestDay,
			CreatedAt: createdAt,
		})
	}

	if workoutTypes == nil {
		workoutTypes = make([]WorkoutType, 0)
	}

	return workoutTypes, nil
}
