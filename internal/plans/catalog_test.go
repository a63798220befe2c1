package plans_test

import (
	"testing"

	"github.com/corrida-app/backend/internal/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := plans.DefaultCatalog()
	require.NotNil(t, catalog)

	allPlans := catalog.All()
	require.Len(t, allPlans, 4)

	expectedDurations := map[string]int{
		"plan8":  8,
		"plan12": 12,
		"plan16": 16,
		"plan20": 20,
	}

	for planID, duration := range expectedDurations {
		plan, ok := catalog.Get(planID)
		require.True(t, ok, "plan %s missing from catalog", planID)
		assert.Equal(t, duration, plan.DurationWeeks)
		assert.Len(t, plan.Schedule, duration)
		assert.NoError(t, plan.Validate())

		// every week: unique day numbers within [1, 7]
		for _, week := range plan.Schedule {
			seenDays := make(map[int]bool)
			for _, workout := range week.Workouts {
				assert.GreaterOrEqual(t, workout.Day, 1)
				assert.LessOrEqual(t, workout.Day, 7)
				assert.False(t, seenDays[workout.Day], "plan %s week %d: duplicate day %d", planID, week.Week, workout.Day)
				seenDays[workout.Day] = true
				assert.True(t, workout.Type.IsValid())
				assert.NotEmpty(t, workout.Activity)
				assert.NotEmpty(t, workout.DayName)
			}
		}
	}

	// unknown plan id: a valid "no plan selected" state
	_, ok := catalog.Get("plan99")
	assert.False(t, ok)
}

func TestNewCatalog_InvalidPlans(t *testing.T) {
	_, err := plans.NewCatalog(plans.TrainingPlan{
		ID:            "broken",
		DurationWeeks: 0,
	})
	assert.ErrorIs(t, err, plans.ErrInvalidPlan)

	_, err = plans.NewCatalog(plans.TrainingPlan{
		ID:            "broken",
		DurationWeeks: 1,
		Schedule: []plans.WeeklyPlan{
			{Week: 1, Workouts: []plans.DailyWorkout{
				{Day: 2, Activity: "corrida", Type: plans.WorkoutTypeRun},
				{Day: 2, Activity: "corrida", Type: plans.WorkoutTypeRun},
			}},
		},
	})
	assert.ErrorIs(t, err, plans.ErrInvalidPlan)

	_, err = plans.NewCatalog(plans.TrainingPlan{
		ID:            "broken",
		DurationWeeks: 1,
		Schedule: []plans.WeeklyPlan{
			{Week: 1, Workouts: []plans.DailyWorkout{
				{Day: 8, Activity: "corrida", Type: plans.WorkoutTypeRun},
			}},
		},
	})
	assert.ErrorIs(t, err, plans.ErrInvalidPlan)
}

func TestTrainingPlan_TotalWorkouts(t *testing.T) {
	plan := testPlan(4)
	assert.Equal(t, 12, plan.TotalWorkouts())

	plan.Schedule = nil
	assert.Equal(t, 0, plan.TotalWorkouts())
}
