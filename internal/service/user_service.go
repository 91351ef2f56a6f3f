package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reeltrack/internal/auth"
	"reeltrack/internal/models"
	"reeltrack/internal/repository"
)

// UserService owns account lifecycle and the embedded favourites list.
type UserService struct {
	repo repository.UserRepository
	jwt  *auth.JWTManager
}

func NewUserService(repo repository.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// Register creates a new account. profilePicURL may be empty; the media
// upload is best-effort and never blocks registration.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest, profilePicURL string) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", models.ErrValidation)
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     req.FullName,
		PasswordHash: hash,
		ProfilePic:   profilePicURL,
		Favorites:    []models.Favorite{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the full account record.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile merges the provided fields into the account record.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.UpdateUserRequest) (*models.User, error) {
	return s.repo.Update(ctx, userID, upd)
}

// DeleteAccount removes the account record. The user's interactions are
// left in place.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// AddFavorite appends a movie to the favourites list; adding the same movie
// twice is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, userID string, req models.AddFavoriteRequest) ([]models.Favorite, error) {
	if req.MovieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	fav := models.Favorite{
		MovieID: req.MovieID,
		Title:   req.Title,
		Year:    req.Year,
		Poster:  req.Poster,
		Type:    req.Type,
		AddedAt: time.Now().UTC(),
	}
	return s.repo.AddFavorite(ctx, userID, fav)
}

// RemoveFavorite filters the movie out of the favourites list.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, movieID string) ([]models.Favorite, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	return s.repo.RemoveFavorite(ctx, userID, movieID)
}

// GetFavorites returns the favourites list; an unknown user yields an empty
// list.
func (s *UserService) GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.repo.GetFavorites(ctx, userID)
}
