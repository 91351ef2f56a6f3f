package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reeltrack/internal/auth"
	"reeltrack/internal/models"
	"reeltrack/internal/repository"
)

func newUserService() *UserService {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(repository.NewMemoryUserRepository(), jwtManager)
}

func registerTestUser(t *testing.T, svc *UserService, email string) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Email:    email,
		Password: "correct-horse-battery",
		FullName: "Alice Tan",
	}, "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	svc := newUserService()

	user := registerTestUser(t, svc, "Alice@Example.com")

	if user.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct-horse-battery" {
		t.Error("password must be stored hashed")
	}
	if user.Favorites == nil {
		t.Error("expected empty favorites list, got nil")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	registerTestUser(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice2",
		Email:    "ALICE@example.com",
		Password: "another-password",
	}, "")
	if !errors.Is(err, models.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	}, "")
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "bob",
	}, "")
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newUserService()
	registerTestUser(t, svc, "alice@example.com")

	user, token, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %q", user.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService()
	registerTestUser(t, svc, "alice@example.com")

	_, _, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newUserService()

	_, _, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfile_PartialMerge(t *testing.T) {
	svc := newUserService()
	user := registerTestUser(t, svc, "alice@example.com")
	ctx := context.Background()

	bio := "film nerd"
	updated, err := svc.UpdateProfile(ctx, user.ID, models.UpdateUserRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.Bio != "film nerd" {
		t.Errorf("bio not updated: got %q", updated.Bio)
	}
	// Untouched fields survive the merge.
	if updated.FullName != "Alice Tan" {
		t.Errorf("full name lost on partial update: got %q", updated.FullName)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("email changed on partial update: got %q", updated.Email)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc := newUserService()

	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), "nonexistent-id", models.UpdateUserRequest{FullName: &name})
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc := newUserService()
	user := registerTestUser(t, svc, "alice@example.com")
	ctx := context.Background()

	if err := svc.DeleteAccount(ctx, user.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, err := svc.Profile(ctx, user.ID); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

func TestAddFavorite_Dedup(t *testing.T) {
	svc := newUserService()
	user := registerTestUser(t, svc, "alice@example.com")
	ctx := context.Background()

	req := models.AddFavoriteRequest{MovieID: "m1", Title: "Dune", Year: 2021}
	favs, err := svc.AddFavorite(ctx, user.ID, req)
	if err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favourite, got %d", len(favs))
	}

	// Adding the same movie again must not grow the list.
	favs, err = svc.AddFavorite(ctx, user.ID, req)
	if err != nil {
		t.Fatalf("second AddFavorite failed: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("duplicate add grew the list: got %d", len(favs))
	}
}

func TestAddFavorite_UnknownUser(t *testing.T) {
	svc := newUserService()

	_, err := svc.AddFavorite(context.Background(), "nonexistent-id", models.AddFavoriteRequest{
		MovieID: "m1",
		Title:   "Dune",
	})
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRemoveFavorite_UnknownUser(t *testing.T) {
	svc := newUserService()

	_, err := svc.RemoveFavorite(context.Background(), "nonexistent-id", "m1")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRemoveFavorite(t *testing.T) {
	svc := newUserService()
	user := registerTestUser(t, svc, "alice@example.com")
	ctx := context.Background()

	if _, err := svc.AddFavorite(ctx, user.ID, models.AddFavoriteRequest{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if _, err := svc.AddFavorite(ctx, user.ID, models.AddFavoriteRequest{MovieID: "m2", Title: "Heat"}); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}

	favs, err := svc.RemoveFavorite(ctx, user.ID, "m1")
	if err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	if len(favs) != 1 || favs[0].MovieID != "m2" {
		t.Fatalf("expected only m2 to remain, got %v", favs)
	}
}

func TestGetFavorites_UnknownUser(t *testing.T) {
	svc := newUserService()

	favs, err := svc.GetFavorites(context.Background(), "nonexistent-id")
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if favs == nil || len(favs) != 0 {
		t.Fatalf("expected empty list, got %v", favs)
	}
}
