package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
)

// SaveProfile creates or replaces the user's health profile. UpdatedAt is
// strictly increasing per user and serves as the profile revision.
func (s *Store) SaveProfile(ctx context.Context, hp *models.HealthProfile) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := hp.Profile
	var updated int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO health_profiles (user_id, age, height_ft, height_in, height_cm, weight_kg,
			activity_level, fitness_goal, dietary_preference, physical_injury, medical_illness, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			age = excluded.age,
			height_ft = excluded.height_ft,
			height_in = excluded.height_in,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			activity_level = excluded.activity_level,
			fitness_goal = excluded.fitness_goal,
			dietary_preference = excluded.dietary_preference,
			physical_injury = excluded.physical_injury,
			medical_illness = excluded.medical_illness,
			updated_at = MAX(excluded.updated_at, health_profiles.updated_at + 1)
		 RETURNING updated_at`,
		hp.UserID, p.Age, p.Height.Feet, p.Height.Inches, p.Height.Centimeters, p.WeightKg,
		string(p.ActivityLevel), string(p.Goal), string(p.DietaryPreference),
		p.PhysicalInjury, p.MedicalIllness, now.UnixMilli(),
	).Scan(&updated)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	hp.UpdatedAt = time.UnixMilli(updated).UTC()
	return nil
}

func (s *Store) Profile(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	hp := models.HealthProfile{UserID: userID}
	var (
		updated              int64
		activity, goal, diet string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT age, height_ft, height_in, height_cm, weight_kg, activity_level, fitness_goal,
			dietary_preference, physical_injury, medical_illness, updated_at
		 FROM health_profiles WHERE user_id = ?`, userID,
	).Scan(&hp.Age, &hp.Height.Feet, &hp.Height.Inches, &hp.Height.Centimeters, &hp.WeightKg,
		&activity, &goal, &diet, &hp.PhysicalInjury, &hp.MedicalIllness, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	hp.ActivityLevel = plan.ActivityLevel(activity)
	hp.Goal = plan.Goal(goal)
	hp.DietaryPreference = plan.DietaryPreference(diet)
	hp.UpdatedAt = time.UnixMilli(updated).UTC()
	return &hp, nil
}

// AddPlan appends p to the user's plan history.
func (s *Store) AddPlan(ctx context.Context, userID int64, p plan.Plan) (*models.PlanRecord, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO plans (user_id, created_at, goal, calories, body) VALUES (?, ?, ?, ?, ?)",
		userID, now.UnixMilli(), string(p.Goal), p.Calories, string(body),
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return &models.PlanRecord{ID: id, UserID: userID, CreatedAt: now, Plan: p}, nil
}

// Plans returns up to limit plans for the user, newest first.
func (s *Store) Plans(ctx context.Context, userID int64, limit int) ([]models.PlanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, body FROM plans
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	records := []models.PlanRecord{}
	for rows.Next() {
		rec := models.PlanRecord{UserID: userID}
		var (
			created int64
			body    string
		)
		if err := rows.Scan(&rec.ID, &created, &body); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &rec.Plan); err != nil {
			return nil, fmt.Errorf("decode plan %d: %w", rec.ID, err)
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
