package training

import (
	"time"

	"github.com/corrida-app/backend/internal/plans"
)

// WorkoutLog is a user-recorded outcome for one calendar date, independent
// of whether a slot was scheduled that day. At most one log exists per user
// per date; saving again for the same date overwrites the previous one.
// DistanceKm and TimeMinutes are meaningful only for run workouts and are
// nil when not reported. They are never coerced to zero, so that stats
// like best pace can tell "no data" from "zero".
type WorkoutLog struct {
	UserID      string            `json:"-"`
	Date        time.Time         `json:"date"`
	Completed   bool              `json:"completed"`
	DistanceKm  *float64          `json:"distance,omitempty"`
	TimeMinutes *int              `json:"time,omitempty"`
	Type        plans.WorkoutType `json:"type"`
	Activity    string            `json:"activity"`
}

// Achievement is a derived milestone, recomputed from the current log
// state on every evaluation and never persisted. Editing or deleting
// logs can re-lock a previously unlocked achievement.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}
