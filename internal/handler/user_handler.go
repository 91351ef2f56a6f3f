package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"reeltrack/internal/cloudinary"
	"reeltrack/internal/middleware"
	"reeltrack/internal/models"
	"reeltrack/internal/service"
)

type UserHandler struct {
	svc      *service.UserService
	uploader *cloudinary.Client
}

func NewUserHandler(svc *service.UserService, uploader *cloudinary.Client) *UserHandler {
	return &UserHandler{svc: svc, uploader: uploader}
}

// Health returns service health status.
func (h *UserHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "reeltrack",
	})
}

// Register creates a new account. Accepts JSON or a multipart form with an
// optional profilePic file.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	var profilePicURL string

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		req = models.RegisterRequest{
			Username: c.FormValue("username"),
			Email:    c.FormValue("email"),
			FullName: c.FormValue("fullName"),
			Password: c.FormValue("password"),
		}
		profilePicURL = h.uploadProfilePic(c)
	} else if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	user, err := h.svc.Register(c.Context(), req, profilePicURL)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, user)
}

// Login verifies credentials and returns a token plus the account record.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	user, token, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c fiber.Ctx) error {
	user, err := h.svc.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// UpdateMe merges the provided profile fields into the account.
func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	user, err := h.svc.UpdateProfile(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user)
}

// DeleteMe removes the account. Interaction records are not cascaded.
func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	if err := h.svc.DeleteAccount(c.Context(), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// AddFavorite appends a movie to the favourites list.
func (h *UserHandler) AddFavorite(c fiber.Ctx) error {
	var req models.AddFavoriteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Success: false, Error: "invalid request body"})
	}

	favorites, err := h.svc.AddFavorite(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, favorites)
}

// RemoveFavorite filters a movie out of the favourites list.
func (h *UserHandler) RemoveFavorite(c fiber.Ctx) error {
	favorites, err := h.svc.RemoveFavorite(c.Context(), middleware.UserID(c), c.Params("movieId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, favorites)
}

// GetFavorites returns the favourites list.
func (h *UserHandler) GetFavorites(c fiber.Ctx) error {
	favorites, err := h.svc.GetFavorites(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, favorites)
}

// uploadProfilePic pushes the optional profilePic form file to the media
// host. Best-effort: any failure logs a warning and registration proceeds
// without a picture.
func (h *UserHandler) uploadProfilePic(c fiber.Ctx) string {
	fh, err := c.FormFile("profilePic")
	if err != nil || fh == nil {
		return ""
	}
	if h.uploader == nil || !h.uploader.Enabled() {
		slog.Warn("profile picture skipped, media upload not configured")
		return ""
	}

	f, err := fh.Open()
	if err != nil {
		slog.Warn("failed to open uploaded profile picture", "error", err)
		return ""
	}
	defer f.Close()

	result, err := h.uploader.Upload(context.Background(), fh.Filename, f)
	if err != nil {
		slog.Warn("profile picture upload failed", "error", err)
		return ""
	}
	return result.SecureURL
}
