package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"reeltrack/internal/models"
)

const interactionColumns = `user_id, movie_id, status, rating, review, title,
	poster, genres, keywords, runtime, release_year, language, popularity,
	vote_average, content_type, is_favourite, added_at, watched_at, updated_at`

// PostgresInteractionRepository is the PostgreSQL-backed
// InteractionRepository.
type PostgresInteractionRepository struct {
	db *sql.DB
}

func NewPostgresInteractionRepository(db *sql.DB) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{db: db}
}

// Insert creates a new interaction record. ON CONFLICT DO NOTHING turns the
// exists-check and the write into one conditional insert.
func (r *PostgresInteractionRepository) Insert(ctx context.Context, in *models.Interaction) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO interactions (user_id, movie_id, status, rating, review, title, poster,
			genres, keywords, runtime, release_year, language, popularity, vote_average,
			content_type, is_favourite, added_at, watched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), $17)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`, in.UserID, in.MovieID, in.Status, in.Rating, in.Review, in.Title, in.Poster,
		pq.Array(in.Genres), pq.Array(in.Keywords), in.Runtime, in.ReleaseYear,
		in.Language, in.Popularity, in.VoteAverage, in.Type, in.IsFavourite, in.WatchedAt)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	if n == 0 {
		return models.ErrAlreadyOnList
	}
	return nil
}

// Get returns the interaction for the (user, movie) pair.
func (r *PostgresInteractionRepository) Get(ctx context.Context, userID, movieID string) (*models.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+interactionColumns+` FROM interactions
		WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	return scanInteraction(row)
}

// UpsertWatched marks the record watched, creating it when absent. The
// conflict branch never touches the rating column, so an existing rating
// survives; a fresh insert starts with rating NULL.
func (r *PostgresInteractionRepository) UpsertWatched(ctx context.Context, in *models.Interaction) (*models.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO interactions (user_id, movie_id, status, review, title, poster,
			genres, keywords, runtime, release_year, language, popularity, vote_average,
			content_type, added_at, watched_at)
		VALUES ($1, $2, 'watched', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			status     = 'watched',
			watched_at = NOW(),
			updated_at = NOW()
		RETURNING `+interactionColumns+`
	`, in.UserID, in.MovieID, in.Review, in.Title, in.Poster,
		pq.Array(in.Genres), pq.Array(in.Keywords), in.Runtime, in.ReleaseYear,
		in.Language, in.Popularity, in.VoteAverage, in.Type)
	return scanInteraction(row)
}

// SetRating sets the rating and forces status to watched on an existing
// record. Rating a movie the user has no record for is rejected rather than
// creating a partial one.
func (r *PostgresInteractionRepository) SetRating(ctx context.Context, userID, movieID string, rating float64) (*models.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET rating = $3, status = 'watched', updated_at = NOW()
		WHERE user_id = $1 AND movie_id = $2
		RETURNING `+interactionColumns+`
	`, userID, movieID, rating)
	return scanInteraction(row)
}

// SetReview sets the review text on an existing record.
func (r *PostgresInteractionRepository) SetReview(ctx context.Context, userID, movieID, review string) (*models.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET review = $3, updated_at = NOW()
		WHERE user_id = $1 AND movie_id = $2
		RETURNING `+interactionColumns+`
	`, userID, movieID, review)
	return scanInteraction(row)
}

// SetFavourite flips the favourite flag. The status guard lives in the
// WHERE clause so the rule holds even under concurrent status changes.
func (r *PostgresInteractionRepository) SetFavourite(ctx context.Context, userID, movieID string, isFavourite bool) (*models.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET is_favourite = $3, updated_at = NOW()
		WHERE user_id = $1 AND movie_id = $2 AND status = 'watched'
		RETURNING `+interactionColumns+`
	`, userID, movieID, isFavourite)
	return scanInteraction(row)
}

// Delete removes the record; deleting an absent one is a no-op.
func (r *PostgresInteractionRepository) Delete(ctx context.Context, userID, movieID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM interactions WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}

// ListByUser returns all of the user's interactions in key order.
func (r *PostgresInteractionRepository) ListByUser(ctx context.Context, userID string) ([]models.Interaction, error) {
	return r.list(ctx, `
		SELECT `+interactionColumns+` FROM interactions
		WHERE user_id = $1
		ORDER BY movie_id
	`, userID)
}

// ListByUserAndType filters the user's range by content type. Only user_id
// is indexed, so cost stays proportional to the user's total record count.
func (r *PostgresInteractionRepository) ListByUserAndType(ctx context.Context, userID, contentType string) ([]models.Interaction, error) {
	return r.list(ctx, `
		SELECT `+interactionColumns+` FROM interactions
		WHERE user_id = $1 AND content_type = $2
		ORDER BY movie_id
	`, userID, contentType)
}

func (r *PostgresInteractionRepository) list(ctx context.Context, query string, args ...any) ([]models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	interactions := []models.Interaction{}
	for rows.Next() {
		in, err := scanInteractionRow(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interactions: %w", err)
	}
	return interactions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(row *sql.Row) (*models.Interaction, error) {
	in, err := scanInteractionRow(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrInteractionNotFound
	}
	return in, err
}

func scanInteractionRow(row rowScanner) (*models.Interaction, error) {
	var in models.Interaction
	var rating sql.NullFloat64
	var watchedAt sql.NullTime
	err := row.Scan(
		&in.UserID, &in.MovieID, &in.Status, &rating, &in.Review, &in.Title,
		&in.Poster, pq.Array(&in.Genres), pq.Array(&in.Keywords), &in.Runtime,
		&in.ReleaseYear, &in.Language, &in.Popularity, &in.VoteAverage,
		&in.Type, &in.IsFavourite, &in.AddedAt, &watchedAt, &in.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan interaction: %w", err)
	}
	if rating.Valid {
		in.Rating = &rating.Float64
	}
	if watchedAt.Valid {
		in.WatchedAt = &watchedAt.Time
	}
	return &in, nil
}
