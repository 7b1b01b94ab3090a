package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/services"
	"github.com/terravista/estates/internal/types"
)

// AuthAdmin validates that the request has admin role authorization
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"admin"}, "authorization.admin")
	}
}

// AuthUser validates that the request has user role authorization
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"user"}, "authorization.user")
	}
}

// authorize performs the authorization check and stores the caller's
// session in request locals for the handlers.
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string, errorType string) error {
	// The Authorizer client needs the request host for its redirect URL,
	// so it is initialized on the first authenticated request.
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusServiceUnavailable,
				Message: fmt.Sprintf("Authorizer unavailable: %v", err),
				Kind:    types.KindAuthentication,
			}
		}
	}

	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: fmt.Sprintf("Authorizer cookie \"cookie_session\" not found [%s]", errorType),
			Kind:    types.KindAuthentication,
		}
	}

	// Validate session
	sess, err := services.ValidateSession(session, roles)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Kind:    types.KindAuthentication,
		}
	}

	c.Locals("session", sess)

	return c.Next()
}
