package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitness-planner/internal/auth"
	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
)

const maxBodyBytes = 1 << 20

type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	SaveProfile(ctx context.Context, hp *models.HealthProfile) error
	Profile(ctx context.Context, userID int64) (*models.HealthProfile, error)
	AddPlan(ctx context.Context, userID int64, p plan.Plan) (*models.PlanRecord, error)
	Plans(ctx context.Context, userID int64, limit int) ([]models.PlanRecord, error)
}

type Cache interface {
	IsRateLimited(ctx context.Context, key string) bool
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Planner produces a plan and reports where it came from.
type Planner interface {
	Generate(ctx context.Context, p plan.Profile) (plan.Plan, string, error)
}

type Handler struct {
	store   Store
	cache   Cache
	planner Planner
	tokens  *auth.Manager
	planTTL time.Duration
}

func NewHandler(store Store, cache Cache, planner Planner, tokens *auth.Manager, planTTL time.Duration) *Handler {
	return &Handler{
		store:   store,
		cache:   cache,
		planner: planner,
		tokens:  tokens,
		planTTL: planTTL,
	}
}

// Routes registers every endpoint on a new ServeMux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", h.Healthz)

	mux.HandleFunc("POST /api/register", h.rateLimited("register", h.Register))
	mux.HandleFunc("POST /api/login", h.rateLimited("login", h.Login))
	mux.HandleFunc("POST /api/plan/preview", h.rateLimited("preview", h.PreviewPlan))

	mux.HandleFunc("POST /api/logout", h.tokens.ValidateToken(h.Logout))
	mux.HandleFunc("GET /api/profile", h.tokens.ValidateToken(h.GetProfile))
	mux.HandleFunc("PUT /api/profile", h.tokens.ValidateToken(h.PutProfile))
	mux.HandleFunc("GET /api/plan", h.tokens.ValidateToken(h.GetPlan))
	mux.HandleFunc("GET /api/plans", h.tokens.ValidateToken(h.ListPlans))

	return mux
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) rateLimited(scope string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := clientIP(r)
		if h.cache.IsRateLimited(r.Context(), scope+":"+clientIP) {
			slog.Warn("Rate limit exceeded", "ip", clientIP, "scope", scope)
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// userID returns the id of the authenticated caller. ValidateToken has
// already rejected tokens without a numeric subject.
func userID(r *http.Request) (int64, *auth.Claims) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		return 0, nil
	}
	id, _ := claims.UserID()
	return id, claims
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func internalError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, "error", err)...)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
