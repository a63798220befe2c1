package plans

import (
	"errors"
	"fmt"
)

var ErrInvalidPlan = errors.New("invalid training plan")

// WorkoutType can be one of:
//   - run
//   - strength
//   - rest
type WorkoutType string

const (
	WorkoutTypeRun      WorkoutType = "run"
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeRest     WorkoutType = "rest"
)

func (wt WorkoutType) String() string {
	return string(wt)
}

func (wt WorkoutType) IsValid() bool {
	switch wt {
	case WorkoutTypeRun, WorkoutTypeStrength, WorkoutTypeRest:
		return true
	default:
		return false
	}
}

// DailyWorkout is one scheduled workout slot within a plan week.
// Day is 1-based, 1 being the first weekday of the plan's week.
type DailyWorkout struct {
	Day      int         `json:"day"`
	DayName  string      `json:"dayName"`
	Activity string      `json:"activity"`
	Type     WorkoutType `json:"type"`
}

type WeeklyPlan struct {
	Week     int            `json:"week"`
	Workouts []DailyWorkout `json:"workouts"`
}

// TrainingPlan is an immutable multi-week template of workout slots.
// Plans are defined once at process start and never mutated.
type TrainingPlan struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	DurationWeeks int          `json:"duration"`
	Description   string       `json:"description"`
	Schedule      []WeeklyPlan `json:"schedule"`
}

// TotalWorkouts is the static count of workout slots over all plan weeks.
func (tp TrainingPlan) TotalWorkouts() int {
	total := 0
	for _, week := range tp.Schedule {
		total += len(week.Workouts)
	}
	return total
}

// Validate reports a programmer error for malformed plan templates:
// non-positive duration, non-contiguous week numbers, or duplicate /
// out-of-range day numbers within a week.
func (tp TrainingPlan) Validate() error {
	if tp.DurationWeeks <= 0 {
		return fmt.Errorf("%w: plan %s: duration %d", ErrInvalidPlan, tp.ID, tp.DurationWeeks)
	}

	for i, week := range tp.Schedule {
		if week.Week != i+1 {
			return fmt.Errorf("%w: plan %s: week %d at position %d", ErrInvalidPlan, tp.ID, week.Week, i)
		}
		seenDays := make(map[int]bool)
		for _, workout := range week.Workouts {
			if workout.Day < 1 || workout.Day > 7 {
				return fmt.Errorf("%w: plan %s: week %d: day %d out of range", ErrInvalidPlan, tp.ID, week.Week, workout.Day)
			}
			if seenDays[workout.Day] {
				return fmt.Errorf("%w: plan %s: week %d: duplicate day %d", ErrInvalidPlan, tp.ID, week.Week, workout.Day)
			}
			seenDays[workout.Day] = true
		}
	}

	return nil
}
