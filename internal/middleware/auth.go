package middleware

import (
	"strings"

	"tokobaju/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UsernameLocal is the fiber.Ctx Locals key holding the authenticated username.
const UsernameLocal = "username"

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	ValidateToken(tokenString string) (string, error)
}

// AuthRequired is a Fiber middleware admitting only requests with a valid bearer token.
// A missing token is answered with 401, a token that fails verification with 403.
func AuthRequired(verifier TokenVerifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		username, err := verifier.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(UsernameLocal, username)
		c.SetUserContext(services.WithActor(c.UserContext(), username))

		return c.Next()
	}
}
