package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corrida-app/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", user.ID))

	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO app_user
				(id, name, email, password_hash, dob, height_cm, sex)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.DateOfBirth, user.HeightCm, user.Sex,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyemail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *Repo) UpdateProfile(ctx context.Context, user *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", user.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET name = $1, dob = $2, height_cm = $3, sex = $4 WHERE id = $5;`,
		user.Name, user.DateOfBirth, user.HeightCm, user.Sex, user.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetPlan assigns a training plan and its start date to the user.
// Re-selecting a plan restarts it from the given date.
func (r *Repo) SetPlan(ctx context.Context, userID, planID string, startDate time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setplan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.String("plan.id", planID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET current_plan_id = $1, plan_start_date = $2 WHERE id = $3;`,
		planID, startDate, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) getOne(ctx context.Context, whereClause string, arg any) (*User, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, email, password_hash, dob, height_cm, sex, current_plan_id, plan_start_date
			FROM app_user `+whereClause+`;`,
		arg,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users, err := r.rows2users(rows)
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		return nil, ErrUserNotFound
	}

	return &users[0], nil
}

func (r *Repo) rows2users(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.DateOfBirth, &user.HeightCm, &user.Sex,
			&user.CurrentPlanID, &user.PlanStartDate,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
