// Package repository mediates all reads and writes of user and interaction
// records. Every mutating operation is a single conditional statement
// against the store, so there is no read-then-write window to race through.
package repository

import (
	"context"

	"reeltrack/internal/models"
)

// UserRepository persists account records and the embedded favourites list.
type UserRepository interface {
	// Create inserts a new user. Returns models.ErrEmailExists if the email
	// is already registered (case-insensitive).
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail looks up a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update merges the non-nil fields of upd into the user's record.
	Update(ctx context.Context, id string, upd models.UpdateUserRequest) (*models.User, error)
	// Delete removes the account. Interactions are not cascaded.
	Delete(ctx context.Context, id string) error

	// AddFavorite appends fav to the user's favourites unless an entry with
	// the same movieId already exists; the duplicate add is a no-op. Returns
	// the resulting list, or models.ErrUserNotFound for an absent user.
	AddFavorite(ctx context.Context, userID string, fav models.Favorite) ([]models.Favorite, error)
	// RemoveFavorite filters the entry with the given movieId out of the
	// list and returns the result.
	RemoveFavorite(ctx context.Context, userID, movieID string) ([]models.Favorite, error)
	GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
}

// InteractionRepository persists interaction records keyed by
// (userId, movieId).
type InteractionRepository interface {
	// Insert creates a new record. Returns models.ErrAlreadyOnList if one
	// already exists for the (user, movie) pair.
	Insert(ctx context.Context, in *models.Interaction) error
	Get(ctx context.Context, userID, movieID string) (*models.Interaction, error)
	// UpsertWatched marks the record watched, creating it if absent. An
	// existing rating is preserved; a fresh record starts with a null one.
	UpsertWatched(ctx context.Context, in *models.Interaction) (*models.Interaction, error)
	// SetRating sets the rating and forces status to watched. Returns
	// models.ErrInteractionNotFound if no record exists.
	SetRating(ctx context.Context, userID, movieID string, rating float64) (*models.Interaction, error)
	// SetReview sets the review text on an existing record.
	SetReview(ctx context.Context, userID, movieID, review string) (*models.Interaction, error)
	// SetFavourite sets the favourite flag on a record whose status is
	// watched. Returns models.ErrInteractionNotFound if no watched record
	// matches.
	SetFavourite(ctx context.Context, userID, movieID string, isFavourite bool) (*models.Interaction, error)
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, userID, movieID string) error
	// ListByUser returns all of the user's interactions in key order.
	ListByUser(ctx context.Context, userID string) ([]models.Interaction, error)
	ListByUserAndType(ctx context.Context, userID, contentType string) ([]models.Interaction, error)
}
