package coach

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/training"
)

const (
	summaryWindowDays = 14

	// NoRecentWorkouts is returned instead of an empty summary, so the
	// generation prompt always carries an explicit statement about the
	// user's recent activity.
	NoRecentWorkouts = "No workouts logged in the last 14 days."
)

// RecentLogsSummary renders the logs of the last 14 days relative to "now"
// as a plain text block, one line per log, oldest first. Distance and time
// render as "N/A" when not reported, never as zero.
func RecentLogsSummary(logs []training.WorkoutLog, now time.Time) string {
	windowStart := plans.Day(now).AddDate(0, 0, -summaryWindowDays)
	nowDay := plans.Day(now)

	recent := make([]training.WorkoutLog, 0, len(logs))
	for _, workoutLog := range logs {
		day := plans.Day(workoutLog.Date)
		if day.Before(windowStart) || day.After(nowDay) {
			continue
		}
		recent = append(recent, workoutLog)
	}
	if len(recent) == 0 {
		return NoRecentWorkouts
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Date.Before(recent[j].Date)
	})

	lines := make([]string, 0, len(recent))
	for _, workoutLog := range recent {
		distance := "N/A"
		if workoutLog.DistanceKm != nil {
			distance = fmt.Sprintf("%.1f km", *workoutLog.DistanceKm)
		}
		duration := "N/A"
		if workoutLog.TimeMinutes != nil {
			duration = fmt.Sprintf("%d min", *workoutLog.TimeMinutes)
		}
		lines = append(lines, fmt.Sprintf(
			"Date: %s, Completed: %t, Activity: %s, Distance: %s, Time: %s",
			workoutLog.Date.Format(time.DateOnly),
			workoutLog.Completed,
			workoutLog.Activity,
			distance,
			duration,
		))
	}

	return strings.Join(lines, "\n")
}
