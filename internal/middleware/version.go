package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const currentAPIVersion = "1.0.0"

// versionAliases maps shorthand client version headers to their
// canonical form.
var versionAliases = map[string]string{
	"1":   "1.0.0",
	"1.0": "1.0.0",
}

// VersionMiddleware resolves the X-Api-Version request header to a
// canonical version string and stores it in request locals. Absent
// header means the current version.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", currentAPIVersion)
		if canonical, ok := versionAliases[version]; ok {
			version = canonical
		}
		c.Locals("apiVersion", version)
		return c.Next()
	}
}
