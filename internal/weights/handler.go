package weights

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/corrida-app/backend/internal/auth"
	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/metrics"
	"github.com/corrida-app/backend/internal/telemetry/tracing"
	"github.com/corrida-app/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=weights_test

type weightsRepo interface {
	Add(ctx context.Context, entry WeightEntry) (*WeightEntry, error)
	ListAll(ctx context.Context, userID string) ([]WeightEntry, error)
}

type Handler struct {
	repo    weightsRepo
	metrics *metrics.Manager
}

func NewHandler(repo weightsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/weights", handler.HandleAdd).Methods("POST", "OPTIONS").Name("add-weight")
	router.HandleFunc("/weights", handler.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	type weightRequest struct {
		Date     string  `json:"date"`
		WeightKg float64 `json:"weightKg"`
	}
	var weightReq weightRequest
	if err := json.NewDecoder(r.Body).Decode(&weightReq); err != nil {
		log.Tracef("add weight, unmarshal json params: %s", err)
		http.Error(w, "add weight failed", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, weightReq.Date)
	if err != nil {
		http.Error(w, "invalid date, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if weightReq.WeightKg <= 0 {
		http.Error(w, "invalid weight", http.StatusBadRequest)
		return
	}

	addedEntry, err := handler.repo.Add(ctx, WeightEntry{
		UserID:   userID,
		Date:     plans.Day(date),
		WeightKg: weightReq.WeightKg,
	})
	if err != nil {
		log.Errorf("failed to add weight for %s on %s: %s", userID, weightReq.Date, err)
		http.Error(w, "add weight failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWeightReports.Inc()

	entryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal weight entry: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	entries, err := handler.repo.ListAll(ctx, userID)
	if err != nil {
		log.Errorf("failed to list weights for %s: %s", userID, err)
		http.Error(w, "list weights failed", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("failed to marshal weight entries: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entriesJson)
}
