package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"reeltrack/internal/auth"
)

const userIDKey = "userID"

// RequireAuth validates the Bearer token and stores the authenticated
// user's identity in the request locals.
func RequireAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "missing Authorization header")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "invalid Authorization header format, expected 'Bearer <token>'")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return unauthorized(c, "empty bearer token")
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(userIDKey, claims.UserID)

		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" before RequireAuth ran.
func UserID(c fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
