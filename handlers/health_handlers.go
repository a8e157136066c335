package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the root banner.
const Version = "1.0.0"

const healthPingTimeout = 3 * time.Second

// Root godoc
// @Summary API banner
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *ApplicationHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "MentorAI Backend API",
		"version": Version,
		"status":  "running",
	})
}

// Health godoc
// @Summary Health check
// @Description Reports whether the database answers a ping. The endpoint itself always returns 200.
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	database := "connected"
	if err := h.DB.Ping(ctx); err != nil {
		h.Logger.WithError(err).Warn("Database health check failed")
		database = "disconnected"
	}
	return c.JSON(HealthResponse{
		Status:    "ok",
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}

// NotFound answers every unmatched route.
func (h *ApplicationHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Route not found",
		"path":  c.OriginalURL(),
	})
}
