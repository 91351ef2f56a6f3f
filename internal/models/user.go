package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string     `json:"userId"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	ProfilePic   string     `json:"profilePic,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Location     string     `json:"location,omitempty"`
	Interests    []string   `json:"interests,omitempty"`
	Favorites    []Favorite `json:"favorites"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Favorite is an entry in the user's embedded favourites list.
// At most one entry per movieId per user.
type Favorite struct {
	MovieID string    `json:"movieId"`
	Title   string    `json:"title"`
	Year    int       `json:"year,omitempty"`
	Poster  string    `json:"poster,omitempty"`
	Type    string    `json:"type,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial profile update. Nil fields are left
// untouched; only these fields are updatable, anything else in the body is
// ignored.
type UpdateUserRequest struct {
	FullName   *string   `json:"fullName"`
	ProfilePic *string   `json:"profilePic"`
	Bio        *string   `json:"bio"`
	Location   *string   `json:"location"`
	Interests  *[]string `json:"interests"`
}

// AddFavoriteRequest is the request body for adding a favourite.
type AddFavoriteRequest struct {
	MovieID string `json:"movieId"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Poster  string `json:"poster"`
	Type    string `json:"type"`
}
