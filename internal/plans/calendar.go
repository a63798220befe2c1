package plans

import (
	"fmt"
	"time"
)

// Slot is one scheduled workout mapped to a concrete calendar date.
type Slot struct {
	Workout DailyWorkout `json:"workout"`
	Date    time.Time    `json:"date"`
}

type WeekView struct {
	WeekNumber int    `json:"weekNumber"`
	Slots      []Slot `json:"slots"`
}

// Day truncates the given time to its calendar date (midnight UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveWeek computes the active week for the given plan start date and
// "today", and maps each of that week's slots to a concrete date.
// The week number is clamped to [1, durationWeeks]: a "today" before the
// start date resolves to week 1, a "today" past the plan's end to the
// last week. A plan week missing from the schedule yields an empty slot
// list, which callers must treat as a valid "no data" state.
func ResolveWeek(plan TrainingPlan, startDate, today time.Time) (WeekView, error) {
	if plan.DurationWeeks <= 0 {
		return WeekView{}, fmt.Errorf("%w: plan %s: duration %d", ErrInvalidPlan, plan.ID, plan.DurationWeeks)
	}

	start := Day(startDate)
	now := Day(today)

	daysElapsed := int(now.Sub(start).Hours() / 24)
	if daysElapsed < 0 {
		daysElapsed = 0
	}

	weekNumber := daysElapsed/7 + 1
	if weekNumber > plan.DurationWeeks {
		weekNumber = plan.DurationWeeks
	}

	view := WeekView{
		WeekNumber: weekNumber,
		Slots:      []Slot{},
	}

	for _, week := range plan.Schedule {
		if week.Week != weekNumber {
			continue
		}
		for _, workout := range week.Workouts {
			view.Slots = append(view.Slots, Slot{
				Workout: workout,
				Date:    start.AddDate(0, 0, (weekNumber-1)*7+workout.Day-1),
			})
		}
		break
	}

	return view, nil
}
