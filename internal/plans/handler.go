package plans

import (
	"encoding/json"
	"net/http"

	"github.com/corrida-app/backend/internal/telemetry/tracing"
	"github.com/corrida-app/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PlanSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/plans", handler.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	router.HandleFunc("/plans/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-plan")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	allPlans := handler.catalog.All()
	summaries := make([]PlanSummary, 0, len(allPlans))
	for _, plan := range allPlans {
		summaries = append(summaries, PlanSummary{
			ID:          plan.ID,
			Name:        plan.Name,
			Duration:    plan.DurationWeeks,
			Description: plan.Description,
		})
	}

	summariesJson, err := json.Marshal(summaries)
	if err != nil {
		log.Errorf("failed to marshal plan summaries: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summariesJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["id"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	plan, ok := handler.catalog.Get(planID)
	if !ok {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("failed to marshal plan %s: %s", planID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}
