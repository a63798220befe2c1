package weights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry WeightEntry) (_ *WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", entry.UserID))
	span.SetAttributes(attribute.String("date", entry.Date.Format(time.DateOnly)))

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO weight_entry (user_id, date, weight_kg)
				VALUES ($1, $2, $3)
			ON CONFLICT (user_id, date) DO UPDATE SET
				weight_kg = EXCLUDED.weight_kg;`,
		entry.UserID, plans.Day(entry.Date), entry.WeightKg,
	)
	if err != nil {
		return nil, fmt.Errorf("add weight entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.New("unexpected error, weight entry not saved")
	}

	entry.Date = plans.Day(entry.Date)
	return &entry, nil
}

// ListAll returns the user's weight history, oldest first, so clients can
// chart it without re-sorting.
func (r *Repo) ListAll(ctx context.Context, userID string) (_ []WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, date, weight_kg
			FROM weight_entry
			WHERE user_id = $1
			ORDER BY date ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries := make([]WeightEntry, 0)
	for rows.Next() {
		var entry WeightEntry
		var date time.Time
		if err := rows.Scan(&entry.UserID, &date, &entry.WeightKg); err != nil {
			return nil, err
		}
		entry.Date = plans.Day(date)
		entries = append(entries, entry)
	}

	return entries, nil
}
