package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/corrida-app/backend/internal/auth"
	"github.com/corrida-app/backend/internal/middleware"
	"github.com/corrida-app/backend/internal/plans"
	"github.com/corrida-app/backend/internal/telemetry/metrics"
	"github.com/corrida-app/backend/internal/telemetry/tracing"
	"github.com/corrida-app/backend/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetPlan(ctx context.Context, userID, planID string, startDate time.Time) error
}

type loginService interface {
	Login(ctx context.Context, userID string) (string, error)
	Logout(ctx context.Context, token string) error
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Handler struct {
	repo         usersRepo
	loginService loginService
	catalog      *plans.Catalog
}

func NewHandler(repo usersRepo, loginService loginService, catalog *plans.Catalog) *Handler {
	return &Handler{
		repo:         repo,
		loginService: loginService,
		catalog:      catalog,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	router.HandleFunc("/profile", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	router.HandleFunc("/profile", handler.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
	router.HandleFunc("/profile/plan/{planId}", handler.HandleSelectPlan).Methods("POST", "OPTIONS").Name("select-plan")

	authSubrouter := router.PathPrefix("/a").Subrouter()
	authSubrouter.HandleFunc("/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authSubrouter.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authSubrouter.HandleFunc("/logout", handler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit register/login/logout to prevent abuse
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	type registerRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var registerReq registerRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	if registerReq.Email == "" || registerReq.Password == "" {
		http.Error(w, "error, email or password empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("failed to hash password for %s: %s", registerReq.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	addedUser, err := handler.repo.Add(ctx, User{
		ID:           uuid.NewString(),
		Name:         registerReq.Name,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, "email already taken", http.StatusConflict)
			return
		}
		log.Errorf("failed to add user [%s]: %s", registerReq.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(addedUser)
	if err != nil {
		log.Errorf("failed to marshal new user: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var loginReq loginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		log.Tracef("login, user %s not found: %s", loginReq.Email, err)
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("login, invalid password for %s", loginReq.Email)
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}

	token, err := handler.loginService.Login(ctx, user.ID)
	if err != nil {
		log.Errorf("failed to create session for %s: %s", user.ID, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	loginRespJson, err := json.Marshal(LoginResponse{
		Token: token,
		User:  *user,
	})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, loginRespJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := r.Header.Get("X-CORRIDA-TOKEN")
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.loginService.Logout(ctx, token); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getprofile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %s: %s", userID, err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userJson)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateprofile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	type profileUpdateRequest struct {
		Name        string     `json:"name"`
		DateOfBirth *time.Time `json:"dob"`
		HeightCm    int        `json:"height"`
		Sex         string     `json:"sex"`
	}
	var updateReq profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %s: %s", userID, err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	user.Name = updateReq.Name
	user.DateOfBirth = updateReq.DateOfBirth
	user.HeightCm = updateReq.HeightCm
	user.Sex = updateReq.Sex

	if err := handler.repo.UpdateProfile(ctx, user); err != nil {
		log.Errorf("failed to update user %s: %s", userID, err)
		http.Error(w, "update profile failed", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userJson)
}

// HandleSelectPlan assigns the plan to the signed-in user and starts it
// at the given date (or today when the client sends none).
func (handler *Handler) HandleSelectPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.selectplan")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	planID := vars["planId"]
	if _, found := handler.catalog.Get(planID); !found {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	startDate := plans.Day(time.Now())
	if startDateStr := r.URL.Query().Get("start_date"); startDateStr != "" {
		parsed, err := time.Parse(time.DateOnly, startDateStr)
		if err != nil {
			http.Error(w, "invalid start_date, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		startDate = plans.Day(parsed)
	}

	if err := handler.repo.SetPlan(ctx, userID, planID, startDate); err != nil {
		log.Errorf("failed to set plan %s for user %s: %s", planID, userID, err)
		http.Error(w, "select plan failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %s selected plan %s starting %s", userID, planID, startDate.Format(time.DateOnly))
	pkg.WriteJSONResponseOK(w, `{"selected":"`+planID+`"}`)
}
