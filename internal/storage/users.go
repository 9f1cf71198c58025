package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitness-planner/internal/models"
)

// CreateUser inserts u and fills in its ID and CreatedAt. Username is checked
// before contact and email so callers can report which one clashed.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", u.Username,
	).Scan(&n); err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if n > 0 {
		return ErrUsernameTaken
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE contact = ? OR email = ?", u.Contact, u.Email,
	).Scan(&n); err != nil {
		return fmt.Errorf("check contact: %w", err)
	}
	if n > 0 {
		return ErrContactTaken
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, contact, email, gender, address, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Contact, u.Email, u.Gender, u.Address, u.PasswordHash, now.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrContactTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	u.ID = id
	u.CreatedAt = now
	return nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.queryUser(ctx, "username = ?", username)
}

func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.queryUser(ctx, "id = ?", id)
}

func (s *Store) queryUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var (
		u       models.User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, contact, email, gender, address, password_hash, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.Contact, &u.Email, &u.Gender, &u.Address, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return &u, nil
}
