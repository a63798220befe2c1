package training

import (
	"time"

	"github.com/corrida-app/backend/internal/plans"
)

// DashboardSlot pairs a scheduled workout slot with the log saved for its
// date, if any.
type DashboardSlot struct {
	Workout plans.DailyWorkout `json:"workout"`
	Date    time.Time          `json:"date"`
	Log     *WorkoutLog        `json:"log,omitempty"`
}

type DashboardWeek struct {
	WeekNumber int             `json:"weekNumber"`
	Slots      []DashboardSlot `json:"slots"`
}

type Dashboard struct {
	Plan            *plans.TrainingPlan `json:"plan,omitempty"`
	StartDate       *time.Time          `json:"startDate,omitempty"`
	Week            *DashboardWeek      `json:"week,omitempty"`
	Stats           Stats               `json:"stats"`
	StreakDays      int                 `json:"streakDays"`
	ProgressPercent int                 `json:"progressPercent"`
	Achievements    []Achievement       `json:"achievements"`
}

// BuildDashboard derives the complete dashboard from the user's logs and,
// when a plan is active, the plan schedule. It is a pure recompute over the
// inputs for the given date, so the same inputs always produce the same
// dashboard. A nil plan is a regular state, the user simply has not picked
// one yet, and yields stats and achievements without week or progress data.
func BuildDashboard(
	plan *plans.TrainingPlan,
	startDate *time.Time,
	logs []WorkoutLog,
	today time.Time,
) (Dashboard, error) {
	dashboard := Dashboard{
		Stats:        Aggregate(logs),
		StreakDays:   CurrentStreak(logs, today),
		Achievements: EvaluateAchievements(logs),
	}

	if plan == nil || startDate == nil {
		return dashboard, nil
	}

	weekView, err := plans.ResolveWeek(*plan, *startDate, today)
	if err != nil {
		return Dashboard{}, err
	}

	week := DashboardWeek{
		WeekNumber: weekView.WeekNumber,
		Slots:      make([]DashboardSlot, 0, len(weekView.Slots)),
	}
	for _, slot := range weekView.Slots {
		dashboardSlot := DashboardSlot{
			Workout: slot.Workout,
			Date:    slot.Date,
		}
		if logForDate, ok := dashboard.Stats.ByDate[plans.Day(slot.Date)]; ok {
			logCopy := logForDate
			dashboardSlot.Log = &logCopy
		}
		week.Slots = append(week.Slots, dashboardSlot)
	}

	start := plans.Day(*startDate)
	dashboard.Plan = plan
	dashboard.StartDate = &start
	dashboard.Week = &week
	dashboard.ProgressPercent = ProjectProgress(*plan, logs)

	return dashboard, nil
}
