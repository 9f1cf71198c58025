// Package storage persists users, their health profile and generated plans
// in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrContactTaken  = errors.New("contact or email already exists")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	contact       TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	gender        TEXT NOT NULL,
	address       TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS health_profiles (
	user_id            INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	age                INTEGER NOT NULL,
	height_ft          INTEGER NOT NULL DEFAULT 0,
	height_in          INTEGER NOT NULL DEFAULT 0,
	height_cm          REAL NOT NULL DEFAULT 0,
	weight_kg          REAL NOT NULL,
	activity_level     TEXT NOT NULL,
	fitness_goal       TEXT NOT NULL,
	dietary_preference TEXT NOT NULL,
	physical_injury    TEXT NOT NULL DEFAULT '',
	medical_illness    TEXT NOT NULL DEFAULT '',
	updated_at         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
	id         INTEGER PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at INTEGER NOT NULL,
	goal       TEXT NOT NULL,
	calories   INTEGER NOT NULL,
	body       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plans_user_created ON plans(user_id, created_at DESC);
`

type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
