package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Check handles GET /health
// @Summary Service health
// @Description Reports connectivity to the database, the auth provider, and object storage.
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
