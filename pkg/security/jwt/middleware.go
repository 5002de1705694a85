package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "userId"
	LocalToken  = "token"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets the subject and the raw token into c.Locals.
func NewAuthMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := BearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing or empty Authorization header"})
		}
		subject, err := svc.Validate(tokenStr)
		if err != nil {
			log.WithContext(c.UserContext()).Infow("bearer token rejected", "path", c.Path(), "reason", err.Error())
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals(LocalUserID, subject)
		c.Locals(LocalToken, tokenStr)
		return c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
// Both "Bearer <token>" and "<token>" (no prefix) are accepted.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		if !strings.EqualFold(parts[0], "Bearer") {
			// Fallback: treat entire header as token (for non-standard clients)
			return header
		}
		return strings.TrimSpace(parts[1])
	}
	return header
}
