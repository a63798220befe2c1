package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrLogNotFound = errors.New("workout log not found")

type ListParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert saves the workout log for its (user, date) key. The unique key
// on (user_id, date) enforces the one-log-per-day invariant at the
// storage boundary; a second save for the same date overwrites the first.
func (r *Repo) Upsert(ctx context.Context, workoutLog WorkoutLog) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", workoutLog.UserID))
	span.SetAttributes(attribute.String("date", workoutLog.Date.Format(time.DateOnly)))

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO workout_log
				(user_id, date, completed, distance_km, time_minutes, workout_type, activity)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, date) DO UPDATE SET
				completed = EXCLUDED.completed,
				distance_km = EXCLUDED.distance_km,
				time_minutes = EXCLUDED.time_minutes,
				workout_type = EXCLUDED.workout_type,
				activity = EXCLUDED.activity;`,
		workoutLog.UserID, plans.Day(workoutLog.Date), workoutLog.Completed,
		workoutLog.DistanceKm, workoutLog.TimeMinutes,
		workoutLog.Type.String(), workoutLog.Activity,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.New("unexpected error, workout log not saved")
	}

	workoutLog.Date = plans.Day(workoutLog.Date)
	return &workoutLog, nil
}

func (r *Repo) Get(ctx context.Context, userID string, date time.Time) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, date, completed, distance_km, time_minutes, workout_type, activity
			FROM workout_log
			WHERE user_id = $1 AND date = $2;`,
		userID, plans.Day(date),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := r.rows2logs(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) != 1 {
		return nil, ErrLogNotFound
	}

	return &logs[0], nil
}

// ListAll returns all workout logs for the given params, most recent first.
func (r *Repo) ListAll(ctx context.Context, params ListParams) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, date, completed, distance_km, time_minutes, workout_type, activity
			FROM workout_log
			WHERE user_id = $1
				AND ($2::date IS NULL OR date >= $2)
				AND ($3::date IS NULL OR date <= $3)
			ORDER BY date DESC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	logs, err := r.rows2logs(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2logs: %w", err)
	}
	return logs, nil
}

func (r *Repo) Delete(ctx context.Context, userID string, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("date", date.Format(time.DateOnly)))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_log WHERE user_id = $1 AND date = $2;`,
		userID, plans.Day(date),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (r *Repo) rows2logs(rows pgx.Rows) ([]WorkoutLog, error) {
	var logs []WorkoutLog
	for rows.Next() {
		var userID string
		var date time.Time
		var completed bool
		var distanceKm *float64
		var timeMinutes *int
		var workoutType string
		var activity string
		if err := rows.Scan(&userID, &date, &completed, &distanceKm, &timeMinutes, &workoutType, &activity); err != nil {
			return nil, err
		}

		logs = append(logs, WorkoutLog{
			UserID:      userID,
			Date:        plans.Day(date),
			Completed:   completed,
			DistanceKm:  distanceKm,
			TimeMinutes: timeMinutes,
			Type:        plans.WorkoutType(workoutType),
			Activity:    activity,
		})
	}

	if logs == nil {
		logs = make([]WorkoutLog, 0)
	}

	return logs, nil
}
