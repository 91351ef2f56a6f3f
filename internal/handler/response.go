package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"reeltrack/internal/models"
)

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AppErrorHandler is the app-level Fiber error handler. Fiber errors keep
// their status and message; anything else, including recovered panics, is
// logged in full server-side and surfaces as a generic 500.
func AppErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Success: false, Error: fe.Message})
	}
	slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Success: false, Error: "internal server error"})
}

func respond(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Data: data})
}

// fail maps a domain error onto the envelope and an HTTP status. Anything
// outside the taxonomy is a store or programming failure: it is logged in
// full server-side and surfaces as a generic 500.
func fail(c fiber.Ctx, err error) error {
	status, msg := classify(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrNotWatched):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrInteractionNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrAlreadyOnList), errors.Is(err, models.ErrEmailExists):
		return fiber.StatusConflict, err.Error()
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}
