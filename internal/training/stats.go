package training

import (
	"math"
	"time"

	"github.com/corrida-app/backend/internal/plans"
)

// Stats are the aggregate numbers over a user's whole log history.
// BestPaceMinPerKm is nil when no log qualifies for a pace, which
// presentation renders as "N/A", never as zero.
type Stats struct {
	TotalDistanceKm  float64                  `json:"totalDistanceKm"`
	TotalTimeMinutes int                      `json:"totalTimeMinutes"`
	CompletedRuns    int                      `json:"completedRuns"`
	BestPaceMinPerKm *float64                 `json:"bestPaceMinPerKm,omitempty"`
	ByDate           map[time.Time]WorkoutLog `json:"-"`
}

// Aggregate computes the summary statistics for the given logs.
// Absent distance/time values contribute nothing to the totals, and a
// log with zero distance never produces a pace (no division by zero).
// The ByDate index is last-write-wins over the input order.
func Aggregate(logs []WorkoutLog) Stats {
	stats := Stats{
		ByDate: make(map[time.Time]WorkoutLog, len(logs)),
	}

	for _, workoutLog := range logs {
		if workoutLog.DistanceKm != nil {
			stats.TotalDistanceKm += *workoutLog.DistanceKm
		}
		if workoutLog.TimeMinutes != nil {
			stats.TotalTimeMinutes += *workoutLog.TimeMinutes
		}
		if workoutLog.Type == plans.WorkoutTypeRun && workoutLog.Completed {
			stats.CompletedRuns++
		}

		if workoutLog.Completed &&
			workoutLog.DistanceKm != nil && *workoutLog.DistanceKm > 0 &&
			workoutLog.TimeMinutes != nil {
			pace := float64(*workoutLog.TimeMinutes) / *workoutLog.DistanceKm
			if stats.BestPaceMinPerKm == nil || pace < *stats.BestPaceMinPerKm {
				stats.BestPaceMinPerKm = &pace
			}
		}

		stats.ByDate[plans.Day(workoutLog.Date)] = workoutLog
	}

	return stats
}

// CurrentStreak counts consecutive completed days ending at referenceDate,
// tolerating a single rest day between completed days. The tolerance is a
// deliberate design choice: one skipped day does not break the streak as
// long as the day before it was completed, it just does not count either.
func CurrentStreak(logs []WorkoutLog, referenceDate time.Time) int {
	completedDates := make(map[time.Time]bool)
	for _, workoutLog := range logs {
		if workoutLog.Completed {
			completedDates[plans.Day(workoutLog.Date)] = true
		}
	}
	if len(completedDates) == 0 {
		return 0
	}

	streak := 0
	cursor := plans.Day(referenceDate)
	for {
		if completedDates[cursor] {
			streak++
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}

		// one tolerated rest day: skip it without counting it
		dayBefore := cursor.AddDate(0, 0, -1)
		if completedDates[dayBefore] {
			cursor = dayBefore
			continue
		}

		break
	}

	if streak == 0 && completedDates[plans.Day(referenceDate)] {
		streak = 1
	}

	return streak
}

// hasConsecutiveDays reports whether any run of `days` completed calendar
// dates, each exactly one day apart, exists anywhere in the log history.
func hasConsecutiveDays(logs []WorkoutLog, days int) bool {
	completedDates := make(map[time.Time]bool)
	for _, workoutLog := range logs {
		if workoutLog.Completed {
			completedDates[plans.Day(workoutLog.Date)] = true
		}
	}
	if len(completedDates) < days {
		return false
	}

	for date := range completedDates {
		consecutive := 1
		cursor := date
		for completedDates[cursor.AddDate(0, 0, 1)] {
			consecutive++
			if consecutive >= days {
				return true
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	return false
}

// EvaluateAchievements evaluates the fixed achievement rule set over the
// given logs. The result is a fixed, ordered list, each entry computed
// independently, and a pure function of current log state: deleting logs
// re-locks achievements.
func EvaluateAchievements(logs []WorkoutLog) []Achievement {
	stats := Aggregate(logs)

	hasPaceRecord := false
	for _, workoutLog := range logs {
		if workoutLog.Completed && workoutLog.Type == plans.WorkoutTypeRun &&
			workoutLog.DistanceKm != nil && *workoutLog.DistanceKm > 0 &&
			workoutLog.TimeMinutes != nil {
			hasPaceRecord = true
			break
		}
	}

	return []Achievement{
		{
			ID:          "first_km",
			Name:        "Primeiro KM",
			Description: "Corra seu primeiro quilômetro.",
			Icon:        "👟",
			Unlocked:    stats.TotalDistanceKm >= 1,
		},
		{
			ID:          "first_hour",
			Name:        "Primeira Hora",
			Description: "Acumule uma hora de exercícios.",
			Icon:        "⏱️",
			Unlocked:    stats.TotalTimeMinutes >= 60,
		},
		{
			ID:          "two_day_streak",
			Name:        "Embalou!",
			Description: "Treine por dois dias seguidos.",
			Icon:        "🔥",
			Unlocked:    hasConsecutiveDays(logs, 2),
		},
		{
			ID:          "first_pace",
			Name:        "Que Ritmo!",
			Description: "Registre seu primeiro pace em uma corrida.",
			Icon:        "⚡️",
			Unlocked:    hasPaceRecord,
		},
	}
}

// ProjectProgress returns the plan completion percentage: completed logs
// over the plan's static slot count, rounded, clamped to [0, 100]. The
// clamp guards against over-logging relative to the slot count.
func ProjectProgress(plan plans.TrainingPlan, logs []WorkoutLog) int {
	totalSlots := plan.TotalWorkouts()
	if totalSlots == 0 {
		return 0
	}

	completedSlots := 0
	for _, workoutLog := range logs {
		if workoutLog.Completed {
			completedSlots++
		}
	}

	percentage := int(math.Round(float64(completedSlots) / float64(totalSlots) * 100))
	if percentage > 100 {
		percentage = 100
	}
	return percentage
}
