package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/corrida-app/backend/internal/auth"
	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/metrics"
	"github.com/corrida-app/backend/internal/telemetry/tracing"
	"github.com/corrida-app/backend/internal/users"
	"github.com/corrida-app/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type logsRepo interface {
	Upsert(ctx context.Context, workoutLog WorkoutLog) (*WorkoutLog, error)
	ListAll(ctx context.Context, params ListParams) ([]WorkoutLog, error)
	Delete(ctx context.Context, userID string, date time.Time) error
}

type usersRepo interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type Handler struct {
	repo    logsRepo
	users   usersRepo
	catalog *plans.Catalog
	metrics *metrics.Manager
}

func NewHandler(repo logsRepo, usersRepo usersRepo, catalog *plans.Catalog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		users:   usersRepo,
		catalog: catalog,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts", handler.HandleSave).Methods("POST", "OPTIONS").Name("save-workout")
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	router.HandleFunc("/workouts/{date}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	router.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
}

// workoutRequest mirrors WorkoutLog on the wire, but takes the date as a
// plain YYYY-MM-DD string. Negative distance or time is treated as not
// reported rather than rejected, mobile clients occasionally send -1 for
// cleared inputs.
type workoutRequest struct {
	Date        string   `json:"date"`
	Completed   bool     `json:"completed"`
	DistanceKm  *float64 `json:"distance"`
	TimeMinutes *int     `json:"time"`
	Type        string   `json:"type"`
	Activity    string   `json:"activity"`
}

func (req workoutRequest) toWorkoutLog(userID string) (WorkoutLog, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return WorkoutLog{}, errors.New("invalid date, use YYYY-MM-DD")
	}

	workoutType := plans.WorkoutType(req.Type)
	if !workoutType.IsValid() {
		return WorkoutLog{}, errors.New("invalid workout type")
	}

	workoutLog := WorkoutLog{
		UserID:    userID,
		Date:      plans.Day(date),
		Completed: req.Completed,
		Type:      workoutType,
		Activity:  req.Activity,
	}
	if req.DistanceKm != nil && *req.DistanceKm >= 0 {
		workoutLog.DistanceKm = req.DistanceKm
	}
	if req.TimeMinutes != nil && *req.TimeMinutes >= 0 {
		workoutLog.TimeMinutes = req.TimeMinutes
	}

	return workoutLog, nil
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.save")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var workoutReq workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&workoutReq); err != nil {
		log.Tracef("save workout, unmarshal json params: %s", err)
		http.Error(w, "save workout failed", http.StatusBadRequest)
		return
	}

	workoutLog, err := workoutReq.toWorkoutLog(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	savedLog, err := handler.repo.Upsert(ctx, workoutLog)
	if err != nil {
		log.Errorf("failed to save workout for %s on %s: %s", userID, workoutReq.Date, err)
		http.Error(w, "save workout failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsLogged.Inc()

	savedLogJson, err := json.Marshal(savedLog)
	if err != nil {
		log.Errorf("failed to marshal saved workout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedLogJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	params := ListParams{UserID: userID}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			http.Error(w, "invalid from date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			http.Error(w, "invalid to date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	workoutLogs, err := handler.repo.ListAll(ctx, params)
	if err != nil {
		log.Errorf("failed to list workouts for %s: %s", userID, err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	logsJson, err := json.Marshal(workoutLogs)
	if err != nil {
		log.Errorf("failed to marshal workouts: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, logsJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	date, err := time.Parse(time.DateOnly, vars["date"])
	if err != nil {
		http.Error(w, "invalid date, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, date); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout for %s on %s: %s", userID, vars["date"], err)
		http.Error(w, "delete workout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted:"+vars["date"])
}

// HandleDashboard returns the full derived state for the signed-in user:
// aggregate stats, the running streak, achievements, plan progress and the
// current week of the active plan with logs attached to their slots. An
// optional "date" query param pins the reference date, used by clients in
// other timezones and by tests.
func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.dashboard")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	today := plans.Day(time.Now())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			http.Error(w, "invalid date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		today = plans.Day(parsed)
	}

	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		log.Errorf("dashboard, failed to get user %s: %s", userID, err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	workoutLogs, err := handler.repo.ListAll(ctx, ListParams{UserID: userID})
	if err != nil {
		log.Errorf("dashboard, failed to list workouts for %s: %s", userID, err)
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}

	var plan *plans.TrainingPlan
	if user.CurrentPlanID != nil {
		if activePlan, found := handler.catalog.Get(*user.CurrentPlanID); found {
			plan = &activePlan
		} else {
			log.Warnf("dashboard, user %s has unknown plan %s", userID, *user.CurrentPlanID)
		}
	}

	dashboard, err := BuildDashboard(plan, user.PlanStartDate, workoutLogs, today)
	if err != nil {
		log.Errorf("dashboard, failed to build for %s: %s", userID, err)
		http.Error(w, "dashboard failed", http.StatusInternalServerError)
		return
	}

	dashboardJson, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("failed to marshal dashboard: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, dashboardJson)
}
