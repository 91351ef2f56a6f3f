package service

import (
	"context"
	"errors"
	"testing"

	"reeltrack/internal/models"
	"reeltrack/internal/repository"
)

func newInteractionService() *InteractionService {
	return NewInteractionService(repository.NewMemoryInteractionRepository())
}

func TestAddToWatchlist(t *testing.T) {
	svc := newInteractionService()

	in, err := svc.AddToWatchlist(context.Background(), "u1", models.MovieInput{
		MovieID: "m1",
		Title:   "Dune",
	})
	if err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	if in.Status != models.StatusWatchlist {
		t.Errorf("status: expected %q, got %q", models.StatusWatchlist, in.Status)
	}
	if in.Rating != nil {
		t.Errorf("expected nil rating, got %v", *in.Rating)
	}
	if in.Language != "en" {
		t.Errorf("language default: expected 'en', got %q", in.Language)
	}
	if in.Type != "movie" {
		t.Errorf("type default: expected 'movie', got %q", in.Type)
	}
	if in.AddedAt.IsZero() {
		t.Error("expected non-zero AddedAt")
	}
}

func TestAddToWatchlist_Duplicate(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune Again"})
	if !errors.Is(err, models.ErrAlreadyOnList) {
		t.Fatalf("expected ErrAlreadyOnList, got %v", err)
	}

	// The original record must be untouched by the failed add.
	got, err := svc.Get(ctx, "u1", "m1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Dune" {
		t.Errorf("title changed on duplicate add: got %q", got.Title)
	}
}

func TestAddToWatchlist_MissingMovieID(t *testing.T) {
	svc := newInteractionService()

	_, err := svc.AddToWatchlist(context.Background(), "u1", models.MovieInput{Title: "No ID"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMarkWatched_FromWatchlist(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	in, err := svc.MarkWatched(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"})
	if err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}

	if in.Status != models.StatusWatched {
		t.Errorf("status: expected %q, got %q", models.StatusWatched, in.Status)
	}
	if in.WatchedAt == nil {
		t.Error("expected WatchedAt to be set")
	}
	if in.Rating != nil {
		t.Errorf("unrated movie should stay unrated, got %v", *in.Rating)
	}
}

func TestMarkWatched_Direct(t *testing.T) {
	svc := newInteractionService()

	in, err := svc.MarkWatched(context.Background(), "u1", models.MovieInput{MovieID: "m2", Title: "Heat"})
	if err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}
	if in.Status != models.StatusWatched {
		t.Errorf("status: expected %q, got %q", models.StatusWatched, in.Status)
	}
}

func TestMarkWatched_PreservesRating(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.MarkWatched(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}
	if _, err := svc.Rate(ctx, "u1", "m1", 8.5); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	// Marking watched a second time must not clear the rating.
	in, err := svc.MarkWatched(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"})
	if err != nil {
		t.Fatalf("second MarkWatched failed: %v", err)
	}
	if in.Rating == nil || *in.Rating != 8.5 {
		t.Fatalf("rating not preserved: got %v", in.Rating)
	}
}

func TestRate_ForcesWatched(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	in, err := svc.Rate(ctx, "u1", "m1", 9)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if in.Status != models.StatusWatched {
		t.Errorf("rating must force watched, got %q", in.Status)
	}
	if in.Rating == nil || *in.Rating != 9 {
		t.Fatalf("rating: expected 9, got %v", in.Rating)
	}
}

func TestRate_NotFound(t *testing.T) {
	svc := newInteractionService()

	_, err := svc.Rate(context.Background(), "u1", "never-added", 7)
	if !errors.Is(err, models.ErrInteractionNotFound) {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestRate_OutOfRange(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	for _, rating := range []float64{-0.1, 10.5} {
		if _, err := svc.Rate(ctx, "u1", "m1", rating); !errors.Is(err, models.ErrValidation) {
			t.Errorf("rating %v: expected ErrValidation, got %v", rating, err)
		}
	}

	// Bounds are inclusive.
	for _, rating := range []float64{0, 10} {
		if _, err := svc.Rate(ctx, "u1", "m1", rating); err != nil {
			t.Errorf("rating %v: unexpected error %v", rating, err)
		}
	}
}

func TestReview(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	in, err := svc.Review(ctx, "u1", "m1", "slow burn, great sound design")
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if in.Review != "slow burn, great sound design" {
		t.Errorf("review not stored: got %q", in.Review)
	}
}

func TestReview_NotFound(t *testing.T) {
	svc := newInteractionService()

	_, err := svc.Review(context.Background(), "u1", "never-added", "text")
	if !errors.Is(err, models.ErrInteractionNotFound) {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestToggleFavourite(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.MarkWatched(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}

	in, err := svc.ToggleFavourite(ctx, "u1", "m1", true)
	if err != nil {
		t.Fatalf("ToggleFavourite failed: %v", err)
	}
	if !in.IsFavourite {
		t.Error("expected IsFavourite true")
	}

	in, err = svc.ToggleFavourite(ctx, "u1", "m1", false)
	if err != nil {
		t.Fatalf("ToggleFavourite off failed: %v", err)
	}
	if in.IsFavourite {
		t.Error("expected IsFavourite false")
	}
}

func TestToggleFavourite_NotWatched(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	_, err := svc.ToggleFavourite(ctx, "u1", "m1", true)
	if !errors.Is(err, models.ErrNotWatched) {
		t.Fatalf("expected ErrNotWatched, got %v", err)
	}
}

func TestToggleFavourite_NotFound(t *testing.T) {
	svc := newInteractionService()

	_, err := svc.ToggleFavourite(context.Background(), "u1", "never-added", true)
	if !errors.Is(err, models.ErrInteractionNotFound) {
		t.Fatalf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	if err := svc.Remove(ctx, "u1", "m1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := svc.Get(ctx, "u1", "m1"); !errors.Is(err, models.ErrInteractionNotFound) {
		t.Fatalf("expected ErrInteractionNotFound after remove, got %v", err)
	}

	// Removing again is a no-op, not an error.
	if err := svc.Remove(ctx, "u1", "m1"); err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
}

func TestList(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m2", Title: "Heat"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}
	if _, err := svc.MarkWatched(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune"}); err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}
	if _, err := svc.AddToWatchlist(ctx, "other-user", models.MovieInput{MovieID: "m3", Title: "Se7en"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 interactions, got %d", len(list))
	}
	if list[0].MovieID != "m1" || list[1].MovieID != "m2" {
		t.Errorf("expected key order m1, m2; got %s, %s", list[0].MovieID, list[1].MovieID)
	}
}

func TestList_Empty(t *testing.T) {
	svc := newInteractionService()

	list, err := svc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestListByType(t *testing.T) {
	svc := newInteractionService()
	ctx := context.Background()

	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "m1", Title: "Dune", Type: "movie"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}
	if _, err := svc.AddToWatchlist(ctx, "u1", models.MovieInput{MovieID: "s1", Title: "Severance", Type: "show"}); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	shows, err := svc.ListByType(ctx, "u1", "show")
	if err != nil {
		t.Fatalf("ListByType failed: %v", err)
	}
	if len(shows) != 1 || shows[0].MovieID != "s1" {
		t.Fatalf("expected only s1, got %v", shows)
	}

	if _, err := svc.ListByType(ctx, "u1", "podcast"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown type, got %v", err)
	}
}
