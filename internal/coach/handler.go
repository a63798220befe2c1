package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/corrida-app/backend/internal/auth"
	"github.com/corrida-app/backend/internal/middleware"
	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/metrics"
	"github.com/corrida-app/backend/internal/telemetry/tracing"
	"github.com/corrida-app/backend/internal/training"
	"github.com/corrida-app/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coach_test

type logsRepo interface {
	ListAll(ctx context.Context, params training.ListParams) ([]training.WorkoutLog, error)
}

type adviceGenerator interface {
	GetAdvice(ctx context.Context, logsSummary string) (string, error)
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

type Handler struct {
	repo      logsRepo
	generator adviceGenerator
	metrics   *metrics.Manager
}

func NewHandler(repo logsRepo, generator adviceGenerator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:      repo,
		generator: generator,
		metrics:   metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	adviceAllowedPerMin int,
) {
	coachSubrouter := router.PathPrefix("/coach").Subrouter()
	coachSubrouter.HandleFunc("/advice", handler.HandleAdvice).Methods("POST", "OPTIONS").Name("coach-advice")

	// generation calls are expensive, keep the lid on per-instance volume
	coachSubrouter.Use(middleware.RateLimit(rateLimiter, "coach-advice", adviceAllowedPerMin, handler.metrics))
}

func (handler *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.advice")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	now := plans.Day(time.Now())
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			http.Error(w, "invalid date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		now = plans.Day(parsed)
	}

	workoutLogs, err := handler.repo.ListAll(ctx, training.ListParams{UserID: userID})
	if err != nil {
		log.Errorf("advice, failed to list workouts for %s: %s", userID, err)
		http.Error(w, "advice failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterAdviceRequests.Inc()

	advice, err := handler.generator.GetAdvice(ctx, RecentLogsSummary(workoutLogs, now))
	if err != nil {
		log.Errorf("advice, generation failed for %s: %s", userID, err)
		http.Error(w, "advice failed", http.StatusBadGateway)
		return
	}

	adviceJson, err := json.Marshal(AdviceResponse{Advice: advice})
	if err != nil {
		log.Errorf("failed to marshal advice response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, adviceJson)
}
