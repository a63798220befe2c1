package plans

import "fmt"

// Catalog is the immutable set of training plan templates offered to users.
// It is built once at startup and injected where needed, so tests can
// supply synthetic plans instead.
type Catalog struct {
	plans []TrainingPlan
	byID  map[string]TrainingPlan
}

func NewCatalog(trainingPlans ...TrainingPlan) (*Catalog, error) {
	catalog := &Catalog{
		byID: make(map[string]TrainingPlan),
	}
	for _, plan := range trainingPlans {
		if err := plan.Validate(); err != nil {
			return nil, err
		}
		if _, ok := catalog.byID[plan.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate plan id %s", ErrInvalidPlan, plan.ID)
		}
		catalog.plans = append(catalog.plans, plan)
		catalog.byID[plan.ID] = plan
	}
	return catalog, nil
}

// Get returns the plan for the given id. An unknown id is a valid
// "no plan selected" state, not an error.
func (c *Catalog) Get(id string) (TrainingPlan, bool) {
	plan, ok := c.byID[id]
	return plan, ok
}

func (c *Catalog) All() []TrainingPlan {
	all := make([]TrainingPlan, len(c.plans))
	copy(all, c.plans)
	return all
}

var dayNames = []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo"}

func dailyWorkout(day int, activity string, workoutType WorkoutType) DailyWorkout {
	return DailyWorkout{
		Day:      day,
		DayName:  dayNames[day-1],
		Activity: activity,
		Type:     workoutType,
	}
}

// buildSchedule generates the week-by-week schedule for a plan of the
// given duration. Early weeks alternate light run intervals with walking
// breaks, later weeks stretch the running blocks until the closing weeks
// are continuous runs. The weekly shape follows the original program:
// five run days with two strength/rest days in between.
func buildSchedule(durationWeeks int) []WeeklyPlan {
	schedule := make([]WeeklyPlan, 0, durationWeeks)
	for week := 1; week <= durationWeeks; week++ {
		runActivity := runActivityForWeek(week, durationWeeks)
		longRunActivity := longRunActivityForWeek(week, durationWeeks)
		schedule = append(schedule, WeeklyPlan{
			Week: week,
			Workouts: []DailyWorkout{
				dailyWorkout(1, runActivity, WorkoutTypeRun),
				dailyWorkout(2, runActivity, WorkoutTypeRun),
				dailyWorkout(3, "Descanso/Fortalecimento", WorkoutTypeStrength),
				dailyWorkout(4, runActivity, WorkoutTypeRun),
				dailyWorkout(5, "Descanso/Fortalecimento", WorkoutTypeStrength),
				dailyWorkout(6, runActivity, WorkoutTypeRun),
				dailyWorkout(7, longRunActivity, WorkoutTypeRun),
			},
		})
	}
	return schedule
}

func runActivityForWeek(week, durationWeeks int) string {
	// final quarter of the plan: continuous running
	if week*4 >= durationWeeks*3 {
		minutes := 20 + (week * 10 / durationWeeks * 2)
		return fmt.Sprintf("5 min aquecimento + %d min corrida contínua + 5 min desaquecimento", minutes)
	}

	repetitions := 8 - week/2
	if repetitions < 4 {
		repetitions = 4
	}
	runMinutes := week
	if runMinutes > 10 {
		runMinutes = 10
	}
	return fmt.Sprintf(
		"5 min aquecimento + %dx(%d min corrida leve / 2 min caminhada) + 5 min desaquecimento",
		repetitions, runMinutes,
	)
}

func longRunActivityForWeek(week, durationWeeks int) string {
	if week*4 >= durationWeeks*3 {
		minutes := 30 + (week * 10 / durationWeeks * 2)
		return fmt.Sprintf("5 min aquecimento + %d min corrida contínua em ritmo leve + 5 min desaquecimento", minutes)
	}

	repetitions := 10 - week/2
	if repetitions < 5 {
		repetitions = 5
	}
	runMinutes := week
	if runMinutes > 10 {
		runMinutes = 10
	}
	return fmt.Sprintf(
		"5 min aquecimento + %dx(%d min corrida leve / 2 min caminhada) + 5 min desaquecimento",
		repetitions, runMinutes,
	)
}

// DefaultCatalog is the catalog shipped with the service: the four
// couch-to-5k style programs of the original product.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		TrainingPlan{
			ID:            "plan8",
			Name:          "8 Semanas",
			DurationWeeks: 8,
			Description:   "Para quem já possui algum nível de condicionamento e deseja evoluir de forma estruturada.",
			Schedule:      buildSchedule(8),
		},
		TrainingPlan{
			ID:            "plan12",
			Name:          "12 Semanas",
			DurationWeeks: 12,
			Description:   "Progressão equilibrada para quem quer sair do sedentarismo com segurança.",
			Schedule:      buildSchedule(12),
		},
		TrainingPlan{
			ID:            "plan16",
			Name:          "16 Semanas",
			DurationWeeks: 16,
			Description:   "Evolução gradual com bastante tempo de adaptação entre as fases.",
			Schedule:      buildSchedule(16),
		},
		TrainingPlan{
			ID:            "plan20",
			Name:          "20 Semanas",
			DurationWeeks: 20,
			Description:   "O caminho mais tranquilo até os 5km, um passo de cada vez.",
			Schedule:      buildSchedule(20),
		},
	)
	if err != nil {
		// the default catalog is static, a failure here is a programmer error
		panic(err)
	}
	return catalog
}
