package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/artem13815/trello/api/http/presenter"
	"github.com/artem13815/trello/pkg/auth"
	"github.com/artem13815/trello/pkg/security/jwt"
)

// AdminOnly must run after the JWT middleware. It resolves the token's
// subject and rejects non-admins. By default the rejection is a 401, the
// same as a bad token; forbiddenAs403 switches it to 403.
func AdminOnly(uc auth.AuthUseCase, forbiddenAs403 bool) fiber.Handler {
	forbiddenStatus := http.StatusUnauthorized
	if forbiddenAs403 {
		forbiddenStatus = http.StatusForbidden
	}
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(jwt.LocalToken).(string)
		err := uc.RequireAdmin(c.UserContext(), token)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, auth.ErrForbidden):
			return presenter.Error(c, forbiddenStatus, "admin privileges required")
		case errors.Is(err, auth.ErrUnauthorized):
			return presenter.Error(c, http.StatusUnauthorized, "invalid or expired token")
		default:
			log.WithContext(c.UserContext()).Errorw("authorize failed", "error", err)
			return presenter.Error(c, http.StatusInternalServerError, "failed to authorize")
		}
	}
}
