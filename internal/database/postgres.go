package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"reeltrack/internal/config"
)

// NewPostgres opens the record store and ensures the schema exists.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			profile_pic TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			interests TEXT[] NOT NULL DEFAULT '{}',
			favorites JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Email uniqueness is enforced here, case-insensitively, so the
		// registration check and the insert are a single conditional write.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`,
		// Interactions deliberately carry no foreign key to users: deleting
		// an account does not cascade to its interactions.
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id TEXT NOT NULL,
			movie_id TEXT NOT NULL,
			status TEXT NOT NULL,
			rating DOUBLE PRECISION,
			review TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			poster TEXT NOT NULL DEFAULT '',
			genres TEXT[] NOT NULL DEFAULT '{}',
			keywords TEXT[] NOT NULL DEFAULT '{}',
			runtime INTEGER NOT NULL DEFAULT 0,
			release_year INTEGER NOT NULL DEFAULT 0,
			language TEXT NOT NULL DEFAULT 'en',
			popularity DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_average DOUBLE PRECISION NOT NULL DEFAULT 0,
			content_type TEXT NOT NULL DEFAULT 'movie',
			is_favourite BOOLEAN NOT NULL DEFAULT FALSE,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			watched_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, movie_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
