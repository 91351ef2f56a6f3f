package handler

import (
	"github.com/gofiber/fiber/v3"

	"reeltrack/internal/auth"
	"reeltrack/internal/middleware"
)

// RegisterRoutes mounts all API routes on the app.
func RegisterRoutes(app *fiber.App, uh *UserHandler, ih *InteractionHandler, jwtManager *auth.JWTManager) {
	api := app.Group("/api/v1")
	api.Get("/health", uh.Health)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", uh.Register)
	authGroup.Post("/login", uh.Login)

	requireAuth := middleware.RequireAuth(jwtManager)

	// Profile and favourites
	users := api.Group("/users", requireAuth)
	users.Get("/me", uh.Me)
	users.Patch("/me", uh.UpdateMe)
	users.Delete("/me", uh.DeleteMe)
	users.Post("/me/favorites", uh.AddFavorite)
	users.Get("/me/favorites", uh.GetFavorites)
	users.Delete("/me/favorites/:movieId", uh.RemoveFavorite)

	// Interactions
	movies := api.Group("/movies", requireAuth)
	movies.Post("/watchlist", ih.AddToWatchlist)
	movies.Patch("/watched", ih.MarkWatched)
	movies.Patch("/rate/:movieId", ih.Rate)
	movies.Patch("/review/:movieId", ih.Review)
	movies.Patch("/favourite/:movieId", ih.ToggleFavourite)
	movies.Get("/mine", ih.Mine)
	movies.Get("/mine/type/:type", ih.MineByType)
	movies.Get("/:movieId", ih.GetOne)
	movies.Delete("/:movieId", ih.Remove)
}
