package middleware

import (
	"errors"
	"strings"

	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware guarding the endpoints that need a
// bearer token. Each failure category gets its own message: missing
// header, malformed header, expired token, invalid token, and a token
// whose user no longer exists. On success the authenticated user is
// stored in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token is missing",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token format",
			})
		}

		user, err := authService.VerifyToken(c.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has expired",
				})
			case errors.Is(err, services.ErrUserGone):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "User not found",
				})
			case errors.Is(err, services.ErrTokenInvalid):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token is invalid",
				})
			default:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token validation failed",
				})
			}
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID.Hex())

		return c.Next()
	}
}
