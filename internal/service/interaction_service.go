package service

import (
	"context"
	"fmt"

	"reeltrack/internal/models"
	"reeltrack/internal/repository"
)

// InteractionService owns the transition rules for a user's relationship to
// one movie:
//
//   - a movie enters the list as watchlist or directly as watched
//   - rating a movie forces it to watched
//   - marking watched never clears an existing rating
//   - only watched movies can be favourited
type InteractionService struct {
	repo repository.InteractionRepository
}

func NewInteractionService(repo repository.InteractionRepository) *InteractionService {
	return &InteractionService{repo: repo}
}

// AddToWatchlist creates a fresh interaction with status watchlist. A second
// add for the same movie fails and leaves the original record unchanged.
func (s *InteractionService) AddToWatchlist(ctx context.Context, userID string, input models.MovieInput) (*models.Interaction, error) {
	if err := validateMovieInput(userID, input); err != nil {
		return nil, err
	}

	in := newInteraction(userID, input)
	in.Status = models.StatusWatchlist
	if err := s.repo.Insert(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// MarkWatched transitions the interaction to watched, creating it directly
// in the watched state when the movie was never watchlisted. An existing
// rating is preserved.
func (s *InteractionService) MarkWatched(ctx context.Context, userID string, input models.MovieInput) (*models.Interaction, error) {
	if err := validateMovieInput(userID, input); err != nil {
		return nil, err
	}
	return s.repo.UpsertWatched(ctx, newInteraction(userID, input))
}

// Rate sets the rating and forces the status to watched. Rating a movie
// with no interaction record fails; add it to the watchlist or mark it
// watched first.
func (s *InteractionService) Rate(ctx context.Context, userID, movieID string, rating float64) (*models.Interaction, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	if rating < 0 || rating > 10 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 10", models.ErrValidation)
	}
	return s.repo.SetRating(ctx, userID, movieID, rating)
}

// Review attaches review text to an existing interaction.
func (s *InteractionService) Review(ctx context.Context, userID, movieID, review string) (*models.Interaction, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	return s.repo.SetReview(ctx, userID, movieID, review)
}

// ToggleFavourite sets the favourite flag. Favouriting is only valid for
// watched movies; a watchlist record is rejected, an absent one is not found.
func (s *InteractionService) ToggleFavourite(ctx context.Context, userID, movieID string, isFavourite bool) (*models.Interaction, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}

	current, err := s.repo.Get(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusWatched {
		return nil, models.ErrNotWatched
	}
	return s.repo.SetFavourite(ctx, userID, movieID, isFavourite)
}

// Remove deletes the interaction. Removing an absent movie succeeds.
func (s *InteractionService) Remove(ctx context.Context, userID, movieID string) error {
	if movieID == "" {
		return fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	return s.repo.Delete(ctx, userID, movieID)
}

// Get returns the interaction for one movie.
func (s *InteractionService) Get(ctx context.Context, userID, movieID string) (*models.Interaction, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	return s.repo.Get(ctx, userID, movieID)
}

// List returns all of the user's interactions, watchlist and watched alike.
func (s *InteractionService) List(ctx context.Context, userID string) ([]models.Interaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByType returns the user's interactions filtered by content type.
func (s *InteractionService) ListByType(ctx context.Context, userID, contentType string) ([]models.Interaction, error) {
	if !models.ValidContentTypes[contentType] {
		return nil, fmt.Errorf("%w: invalid type: %s", models.ErrValidation, contentType)
	}
	return s.repo.ListByUserAndType(ctx, userID, contentType)
}

func validateMovieInput(userID string, input models.MovieInput) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", models.ErrValidation)
	}
	if input.MovieID == "" {
		return fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	return nil
}

func newInteraction(userID string, input models.MovieInput) *models.Interaction {
	language := input.Language
	if language == "" {
		language = "en"
	}
	contentType := input.Type
	if contentType == "" {
		contentType = "movie"
	}
	return &models.Interaction{
		UserID:      userID,
		MovieID:     input.MovieID,
		Rating:      nil,
		Title:       input.Title,
		Poster:      input.Poster,
		Genres:      input.Genres,
		Keywords:    input.Keywords,
		Runtime:     input.Runtime,
		ReleaseYear: input.ReleaseYear,
		Language:    language,
		Popularity:  input.Popularity,
		VoteAverage: input.VoteAverage,
		Type:        contentType,
		IsFavourite: false,
	}
}
