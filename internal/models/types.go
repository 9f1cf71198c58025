package models

import (
	"time"

	"fitness-planner/internal/plan"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact"`
	Gender       string    `json:"gender"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HealthProfile is the stored generator input. A user has at most one.
type HealthProfile struct {
	UserID int64 `json:"user_id"`
	plan.Profile
	UpdatedAt time.Time `json:"updated_at"`
}

type PlanRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Plan      plan.Plan `json:"plan"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	Gender          string `json:"gender"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	User    *User          `json:"user"`
	Profile *HealthProfile `json:"profile"`
}

type PlanResponse struct {
	Plan   plan.Plan `json:"plan"`
	Source string    `json:"source"`
}

type PlanHistoryResponse struct {
	Plans []PlanRecord `json:"plans"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
