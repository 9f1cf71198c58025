package api

import (
	"errors"
	"log/slog"
	"net/http"

	"fitness-planner/internal/auth"
	"fitness-planner/internal/models"
	"fitness-planner/internal/storage"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateRegistration(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(w, "Password hashing failed", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Contact:      req.Contact,
		Gender:       req.Gender,
		Address:      req.Address,
		PasswordHash: hash,
	}
	err = h.store.CreateUser(r.Context(), user)
	switch {
	case errors.Is(err, storage.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already exists.")
		return
	case errors.Is(err, storage.ErrContactTaken):
		writeError(w, http.StatusConflict, "Contact or email already exists. Please use a different one.")
		return
	case err != nil:
		internalError(w, "Failed to create user", err, "username", req.Username)
		return
	}

	slog.Info("User registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.UserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		internalError(w, "Failed to load user", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, exp, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		internalError(w, "Failed to issue token", err, "user_id", user.ID)
		return
	}

	slog.Info("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token, ExpiresAt: exp})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, claims := userID(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if err := h.tokens.Revoke(r.Context(), claims); err != nil {
		internalError(w, "Failed to revoke token", err, "user_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
