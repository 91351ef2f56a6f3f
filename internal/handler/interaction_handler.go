package handler

import (
	"github.com/gofiber/fiber/v3"

	"reeltrack/internal/middleware"
	"reeltrack/internal/models"
	"reeltrack/internal/service"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// AddToWatchlist creates a watchlist entry from the movie metadata snapshot
// in the body. A movie already on the user's list is a conflict.
func (h *InteractionHandler) AddToWatchlist(c fiber.Ctx) error {
	var input models.MovieInput
	if err := c.Bind().JSON(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	interaction, err := h.svc.AddToWatchlist(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, interaction)
}

// MarkWatched marks a movie watched, creating the record if the movie was
// never watchlisted.
func (h *InteractionHandler) MarkWatched(c fiber.Ctx) error {
	var input models.MovieInput
	if err := c.Bind().JSON(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	interaction, err := h.svc.MarkWatched(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interaction)
}

// Rate sets the rating; the movie is marked watched as a side effect.
func (h *InteractionHandler) Rate(c fiber.Ctx) error {
	var req models.RateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	interaction, err := h.svc.Rate(c.Context(), middleware.UserID(c), c.Params("movieId"), req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interaction)
}

// Review attaches review text to an existing interaction.
func (h *InteractionHandler) Review(c fiber.Ctx) error {
	var req models.ReviewRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	interaction, err := h.svc.Review(c.Context(), middleware.UserID(c), c.Params("movieId"), req.Review)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interaction)
}

// ToggleFavourite flips the favourite flag on a watched movie.
func (h *InteractionHandler) ToggleFavourite(c fiber.Ctx) error {
	var req models.FavouriteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	interaction, err := h.svc.ToggleFavourite(c.Context(), middleware.UserID(c), c.Params("movieId"), req.IsFavourite)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interaction)
}

// Mine returns all of the user's interactions.
func (h *InteractionHandler) Mine(c fiber.Ctx) error {
	interactions, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interactions)
}

// MineByType returns the user's interactions of one content type.
func (h *InteractionHandler) MineByType(c fiber.Ctx) error {
	interactions, err := h.svc.ListByType(c.Context(), middleware.UserID(c), c.Params("type"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interactions)
}

// GetOne returns the interaction for a single movie.
func (h *InteractionHandler) GetOne(c fiber.Ctx) error {
	interaction, err := h.svc.Get(c.Context(), middleware.UserID(c), c.Params("movieId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, interaction)
}

// Remove deletes the interaction; removing an absent movie succeeds too.
func (h *InteractionHandler) Remove(c fiber.Ctx) error {
	if err := h.svc.Remove(c.Context(), middleware.UserID(c), c.Params("movieId")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"removed": true})
}
