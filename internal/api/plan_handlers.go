package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/storage"
	"fitness-planner/internal/telemetry"
)

const (
	sourceCache = "cache"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// planCacheKey ties a cached plan to the profile revision it was built from,
// so a plan computed from a superseded profile is never served.
func planCacheKey(hp *models.HealthProfile) string {
	return fmt.Sprintf("plan:%d:%d", hp.UserID, hp.UpdatedAt.UnixMilli())
}

// GetPlan generates the caller's plan from their stored profile. Fresh plans
// are appended to the history and cached per profile revision.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, _ := userID(r)
	ctx := r.Context()
	start := time.Now()

	hp, err := h.store.Profile(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, noProfileMessage)
		return
	}
	if err != nil {
		internalError(w, "Failed to load profile", err, "user_id", id)
		return
	}
	cacheKey := planCacheKey(hp)

	cachedData, err := h.cache.Get(ctx, cacheKey)
	if err == nil {
		var resp models.PlanResponse
		if err := json.Unmarshal(cachedData, &resp); err == nil {
			resp.Source = sourceCache
			telemetry.ObservePlan(string(resp.Plan.Goal), sourceCache, resp.Plan.Calories)
			slog.Info("Cache HIT", "user_id", id, "duration", time.Since(start))
			writeJSON(w, http.StatusOK, resp)
			return
		}
		slog.Warn("Discarding unreadable cached plan", "user_id", id)
	}

	p, source, err := h.planner.Generate(ctx, hp.Profile)
	if errors.Is(err, plan.ErrInvalidInput) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		internalError(w, "Plan generation failed", err, "user_id", id)
		return
	}
	telemetry.ObservePlan(string(p.Goal), source, p.Calories)

	if _, err := h.store.AddPlan(ctx, id, p); err != nil {
		internalError(w, "Failed to record plan", err, "user_id", id)
		return
	}

	resp := models.PlanResponse{Plan: p, Source: source}
	if b, err := json.Marshal(resp); err == nil {
		if err := h.cache.Set(ctx, cacheKey, b, h.planTTL); err != nil {
			slog.Warn("Plan cache write failed", "user_id", id, "error", err)
		}
	}

	slog.Info("Plan generated", "user_id", id, "goal", p.Goal, "calories", p.Calories, "source", source, "duration", time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	id, _ := userID(r)

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	plans, err := h.store.Plans(r.Context(), id, limit)
	if err != nil {
		internalError(w, "Failed to list plans", err, "user_id", id)
		return
	}
	writeJSON(w, http.StatusOK, models.PlanHistoryResponse{Plans: plans})
}

// PreviewPlan generates a plan for the profile in the request body without
// storing anything.
func (h *Handler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	var p plan.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := plan.ParseActivityLevel(string(p.ActivityLevel)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, source, err := h.planner.Generate(r.Context(), p)
	if errors.Is(err, plan.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, "Plan preview failed", err)
		return
	}
	telemetry.ObservePlan(string(out.Goal), source, out.Calories)
	writeJSON(w, http.StatusOK, models.PlanResponse{Plan: out, Source: source})
}
