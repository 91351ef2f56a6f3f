package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"reeltrack/internal/models"
)

const userColumns = `id, username, email, full_name, password_hash, profile_pic,
	bio, location, interests, favorites, created_at, updated_at`

// PostgresUserRepository is the PostgreSQL-backed UserRepository.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user. The unique index on LOWER(email) makes the
// uniqueness check part of the insert itself.
func (r *PostgresUserRepository) Create(ctx context.Context, u *models.User) error {
	favJSON, err := json.Marshal(favList(u.Favorites))
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash, profile_pic, bio, location, interests, favorites)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.ProfilePic,
		u.Bio, u.Location, pq.Array(u.Interests), favJSON,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// GetByEmail returns a user by email, case-insensitively.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

// Update merges the non-nil fields of upd into the user's record in a
// single statement.
func (r *PostgresUserRepository) Update(ctx context.Context, id string, upd models.UpdateUserRequest) (*models.User, error) {
	var interests any
	if upd.Interests != nil {
		interests = pq.Array(*upd.Interests)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			full_name   = COALESCE($2, full_name),
			profile_pic = COALESCE($3, profile_pic),
			bio         = COALESCE($4, bio),
			location    = COALESCE($5, location),
			interests   = COALESCE($6, interests),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, upd.FullName, upd.ProfilePic, upd.Bio, upd.Location, interests)
	return scanUser(row)
}

// Delete removes the account record. Interaction records are untouched.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AddFavorite appends the entry unless the movieId is already present. The
// containment guard and the append happen in one conditional update, so
// concurrent adds cannot produce duplicates. An absent user is not found,
// same as RemoveFavorite.
func (r *PostgresUserRepository) AddFavorite(ctx context.Context, userID string, fav models.Favorite) ([]models.Favorite, error) {
	entry, err := json.Marshal([]models.Favorite{fav})
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorite: %w", err)
	}
	probe, err := json.Marshal([]map[string]string{{"movieId": fav.MovieID}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorite probe: %w", err)
	}

	var favJSON []byte
	err = r.db.QueryRowContext(ctx, `
		UPDATE users
		SET favorites = favorites || $2::jsonb, updated_at = NOW()
		WHERE id = $1 AND NOT favorites @> $3::jsonb
		RETURNING favorites
	`, userID, entry, probe).Scan(&favJSON)
	if err == sql.ErrNoRows {
		// Either the user is absent or the entry already exists. Re-read to
		// tell them apart: a duplicate add is a no-op returning the current
		// list, an absent user is not found.
		err = r.db.QueryRowContext(ctx, `
			SELECT favorites FROM users WHERE id = $1
		`, userID).Scan(&favJSON)
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to add favorite: %w", err)
		}
		return decodeFavorites(favJSON)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return decodeFavorites(favJSON)
}

// RemoveFavorite filters the matching movieId out of the list atomically.
func (r *PostgresUserRepository) RemoveFavorite(ctx context.Context, userID, movieID string) ([]models.Favorite, error) {
	var favJSON []byte
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET favorites = COALESCE(
			(SELECT jsonb_agg(f) FROM jsonb_array_elements(favorites) AS f
			 WHERE f->>'movieId' <> $2),
			'[]'::jsonb),
			updated_at = NOW()
		WHERE id = $1
		RETURNING favorites
	`, userID, movieID).Scan(&favJSON)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return decodeFavorites(favJSON)
}

// GetFavorites returns the embedded favourites list. An absent user yields
// an empty list, same as a user with no favourites.
func (r *PostgresUserRepository) GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT favorites FROM users WHERE id = $1
	`, userID).Scan(&favJSON)
	if err == sql.ErrNoRows {
		return []models.Favorite{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return decodeFavorites(favJSON)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var favJSON []byte
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.ProfilePic, &u.Bio, &u.Location, pq.Array(&u.Interests),
		&favJSON, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Favorites, err = decodeFavorites(favJSON)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeFavorites(favJSON []byte) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	if len(favJSON) == 0 {
		return favorites, nil
	}
	if err := json.Unmarshal(favJSON, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return favorites, nil
}

func favList(favs []models.Favorite) []models.Favorite {
	if favs == nil {
		return []models.Favorite{}
	}
	return favs
}
