package models

import "time"

// Interaction statuses.
const (
	StatusWatchlist = "watchlist"
	StatusWatched   = "watched"
)

// Valid content types for interactions and favourites.
var ValidContentTypes = map[string]bool{
	"movie": true,
	"show":  true,
}

// Interaction is a user's recorded relationship with one movie, addressed by
// the (userId, movieId) composite key. Movie metadata is denormalized at
// write time so lists render without a join.
type Interaction struct {
	UserID      string     `json:"userId"`
	MovieID     string     `json:"movieId"`
	Status      string     `json:"status"`
	Rating      *float64   `json:"rating"`
	Review      string     `json:"review,omitempty"`
	Title       string     `json:"title"`
	Poster      string     `json:"poster,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Runtime     int        `json:"runtime,omitempty"`
	ReleaseYear int        `json:"releaseYear,omitempty"`
	Language    string     `json:"language,omitempty"`
	Popularity  float64    `json:"popularity,omitempty"`
	VoteAverage float64    `json:"voteAverage,omitempty"`
	Type        string     `json:"type,omitempty"`
	IsFavourite bool       `json:"isFavourite"`
	AddedAt     time.Time  `json:"addedAt"`
	WatchedAt   *time.Time `json:"watchedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MovieInput is the movie metadata snapshot sent by the client when adding
// to the watchlist or marking watched.
type MovieInput struct {
	MovieID     string   `json:"movieId"`
	Title       string   `json:"title"`
	Poster      string   `json:"poster"`
	Genres      []string `json:"genres"`
	Keywords    []string `json:"keywords"`
	Runtime     int      `json:"runtime"`
	ReleaseYear int      `json:"releaseYear"`
	Language    string   `json:"language"`
	Popularity  float64  `json:"popularity"`
	VoteAverage float64  `json:"voteAverage"`
	Type        string   `json:"type"`
}

// RateRequest is the request body for rating a movie.
type RateRequest struct {
	Rating float64 `json:"rating"`
}

// ReviewRequest is the request body for reviewing a movie.
type ReviewRequest struct {
	Review string `json:"review"`
}

// FavouriteRequest is the request body for toggling the favourite flag.
type FavouriteRequest struct {
	IsFavourite bool `json:"isFavourite"`
}
