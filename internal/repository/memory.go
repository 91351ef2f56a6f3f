package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"reeltrack/internal/models"
)

// In-memory implementations of the repositories. They honor the same
// contract as the PostgreSQL ones and back the test suites; nothing here
// persists across restarts.

type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.ErrEmailExists
		}
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	if u.Favorites == nil {
		u.Favorites = []models.Favorite{}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *MemoryUserRepository) Update(ctx context.Context, id string, upd models.UpdateUserRequest) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.ProfilePic != nil {
		u.ProfilePic = *upd.ProfilePic
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Interests != nil {
		u.Interests = *upd.Interests
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) AddFavorite(ctx context.Context, userID string, fav models.Favorite) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	for _, f := range u.Favorites {
		if f.MovieID == fav.MovieID {
			return append([]models.Favorite{}, u.Favorites...), nil
		}
	}
	u.Favorites = append(u.Favorites, fav)
	u.UpdatedAt = time.Now().UTC()
	return append([]models.Favorite{}, u.Favorites...), nil
}

func (r *MemoryUserRepository) RemoveFavorite(ctx context.Context, userID, movieID string) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	kept := []models.Favorite{}
	for _, f := range u.Favorites {
		if f.MovieID != movieID {
			kept = append(kept, f)
		}
	}
	u.Favorites = kept
	u.UpdatedAt = time.Now().UTC()
	return append([]models.Favorite{}, kept...), nil
}

func (r *MemoryUserRepository) GetFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return []models.Favorite{}, nil
	}
	return append([]models.Favorite{}, u.Favorites...), nil
}

type interactionKey struct {
	userID  string
	movieID string
}

type MemoryInteractionRepository struct {
	mu      sync.Mutex
	records map[interactionKey]*models.Interaction
}

func NewMemoryInteractionRepository() *MemoryInteractionRepository {
	return &MemoryInteractionRepository{records: make(map[interactionKey]*models.Interaction)}
}

func (r *MemoryInteractionRepository) Insert(ctx context.Context, in *models.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := interactionKey{in.UserID, in.MovieID}
	if _, ok := r.records[key]; ok {
		return models.ErrAlreadyOnList
	}
	now := time.Now().UTC()
	in.AddedAt = now
	in.UpdatedAt = now
	cp := *in
	r.records[key] = &cp
	return nil
}

func (r *MemoryInteractionRepository) Get(ctx context.Context, userID, movieID string) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.records[interactionKey{userID, movieID}]
	if !ok {
		return nil, models.ErrInteractionNotFound
	}
	cp := *in
	return &cp, nil
}

func (r *MemoryInteractionRepository) UpsertWatched(ctx context.Context, in *models.Interaction) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := interactionKey{in.UserID, in.MovieID}
	if existing, ok := r.records[key]; ok {
		existing.Status = models.StatusWatched
		existing.WatchedAt = &now
		existing.UpdatedAt = now
		cp := *existing
		return &cp, nil
	}
	fresh := *in
	fresh.Status = models.StatusWatched
	fresh.Rating = nil
	fresh.AddedAt = now
	fresh.WatchedAt = &now
	fresh.UpdatedAt = now
	r.records[key] = &fresh
	cp := fresh
	return &cp, nil
}

func (r *MemoryInteractionRepository) SetRating(ctx context.Context, userID, movieID string, rating float64) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.records[interactionKey{userID, movieID}]
	if !ok {
		return nil, models.ErrInteractionNotFound
	}
	in.Rating = &rating
	in.Status = models.StatusWatched
	in.UpdatedAt = time.Now().UTC()
	cp := *in
	return &cp, nil
}

func (r *MemoryInteractionRepository) SetReview(ctx context.Context, userID, movieID, review string) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.records[interactionKey{userID, movieID}]
	if !ok {
		return nil, models.ErrInteractionNotFound
	}
	in.Review = review
	in.UpdatedAt = time.Now().UTC()
	cp := *in
	return &cp, nil
}

func (r *MemoryInteractionRepository) SetFavourite(ctx context.Context, userID, movieID string, isFavourite bool) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.records[interactionKey{userID, movieID}]
	if !ok || in.Status != models.StatusWatched {
		return nil, models.ErrInteractionNotFound
	}
	in.IsFavourite = isFavourite
	in.UpdatedAt = time.Now().UTC()
	cp := *in
	return &cp, nil
}

func (r *MemoryInteractionRepository) Delete(ctx context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, interactionKey{userID, movieID})
	return nil
}

func (r *MemoryInteractionRepository) ListByUser(ctx context.Context, userID string) ([]models.Interaction, error) {
	return r.listWhere(userID, func(*models.Interaction) bool { return true })
}

func (r *MemoryInteractionRepository) ListByUserAndType(ctx context.Context, userID, contentType string) ([]models.Interaction, error) {
	return r.listWhere(userID, func(in *models.Interaction) bool { return in.Type == contentType })
}

func (r *MemoryInteractionRepository) listWhere(userID string, keep func(*models.Interaction) bool) ([]models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Interaction{}
	for key, in := range r.records {
		if key.userID == userID && keep(in) {
			out = append(out, *in)
		}
	}
	// Key order, as the range query would return them.
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}
