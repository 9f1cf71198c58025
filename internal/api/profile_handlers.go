package api

import (
	"errors"
	"log/slog"
	"net/http"

	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/storage"
)

const noProfileMessage = "Please complete your health profile first."

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := userID(r)
	ctx := r.Context()

	user, err := h.store.UserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(w, "Failed to load user", err, "user_id", id)
		return
	}

	hp, err := h.store.Profile(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, noProfileMessage)
		return
	}
	if err != nil {
		internalError(w, "Failed to load profile", err, "user_id", id)
		return
	}

	writeJSON(w, http.StatusOK, models.ProfileResponse{User: user, Profile: hp})
}

// PutProfile creates or replaces the caller's health profile.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := userID(r)
	ctx := r.Context()

	var p plan.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateProfile(p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prev, err := h.store.Profile(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		internalError(w, "Failed to load profile", err, "user_id", id)
		return
	}

	hp := &models.HealthProfile{UserID: id, Profile: p}
	if err := h.store.SaveProfile(ctx, hp); err != nil {
		internalError(w, "Failed to save profile", err, "user_id", id)
		return
	}
	if prev != nil {
		if err := h.cache.Delete(ctx, planCacheKey(prev)); err != nil {
			slog.Warn("Plan cache invalidation failed", "user_id", id, "error", err)
		}
	}

	slog.Info("Profile saved", "user_id", id, "goal", p.Goal)
	writeJSON(w, http.StatusOK, hp)
}
